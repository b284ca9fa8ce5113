package dto

import "time"

type FaqRequest struct {
	Question string `json:"question" yaml:"question" validate:"required,max=500"`
	Answer   string `json:"answer" yaml:"answer" validate:"required"`
}

type FaqResponse struct {
	Id        uint       `json:"id"`
	Question  string     `json:"question"`
	Answer    string     `json:"answer"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ListFaqRequest struct {
	Keyword string `query:"q"`
	Page    int    `query:"page"`
	Limit   int    `query:"limit"`
}

// ImportFaqResult summarizes a bulk upsert
type ImportFaqResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

type PaginatedResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
