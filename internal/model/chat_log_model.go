package model

import (
	"time"

	"gorm.io/datatypes"
)

type ChatLog struct {
	Id          uint              `gorm:"primaryKey;autoIncrement"`
	UserId      string            `gorm:"type:varchar(255);not null;index"`
	UserMessage string            `gorm:"type:text;not null"`
	BotResponse string            `gorm:"type:text;not null"`
	Branch      string            `gorm:"type:varchar(32);not null;index"`
	Signals     datatypes.JSONMap // tone / language of the user message
	Timestamp   time.Time         `gorm:"column:timestamp;not null;index"`
}

func (ChatLog) TableName() string {
	return "chat_logs"
}
