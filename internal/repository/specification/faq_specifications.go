package specification

import "gorm.io/gorm"

// ByQuestion matches a question exactly
type ByQuestion struct {
	Question string
}

func (s ByQuestion) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("question = ?", s.Question)
}

// QuestionContains is a substring search used by the admin listing
type QuestionContains struct {
	Keyword string
}

func (s QuestionContains) Apply(db *gorm.DB) *gorm.DB {
	if s.Keyword == "" {
		return db
	}
	return db.Where("question LIKE ?", "%"+s.Keyword+"%")
}
