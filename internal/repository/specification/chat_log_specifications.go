package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByUserId struct {
	UserId string
}

func (s ByUserId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

type ByBranches struct {
	Branches []string
}

func (s ByBranches) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("branch IN ?", s.Branches)
}

// Since keeps logs at or after the given time
type Since struct {
	Time time.Time
}

func (s Since) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("timestamp >= ?", s.Time)
}
