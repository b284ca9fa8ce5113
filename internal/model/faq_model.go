package model

import "time"

type Faq struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	Question  string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Answer    string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Faq) TableName() string {
	return "faq"
}
