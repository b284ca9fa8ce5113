package entity

import "time"

type Faq struct {
	Id        uint
	Question  string
	Answer    string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
