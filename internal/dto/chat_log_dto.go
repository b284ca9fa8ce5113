package dto

import "time"

type ListChatLogRequest struct {
	UserId       string `query:"user_id"`
	Branch       string `query:"branch"`
	NeedsHuman   bool   `query:"needs_human"`
	SinceMinutes int    `query:"since_minutes"`
	Page         int    `query:"page"`
	Limit        int    `query:"limit"`
}

type ChatLogResponse struct {
	Id          uint      `json:"id"`
	UserId      string    `json:"user_id"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	Branch      string    `json:"branch"`
	Tone        string    `json:"tone,omitempty"`
	Language    string    `json:"language,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
