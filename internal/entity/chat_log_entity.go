package entity

import "time"

type ChatLog struct {
	Id          uint
	UserId      string
	UserMessage string
	BotResponse string
	Branch      string
	Tone        string
	Language    string
	Timestamp   time.Time
}
