package mapper

import (
	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/model"

	"gorm.io/datatypes"
)

type ChatLogMapper struct{}

func NewChatLogMapper() *ChatLogMapper {
	return &ChatLogMapper{}
}

func (m *ChatLogMapper) ToEntity(c *model.ChatLog) *entity.ChatLog {
	if c == nil {
		return nil
	}

	tone, _ := c.Signals["tone"].(string)
	language, _ := c.Signals["language"].(string)

	return &entity.ChatLog{
		Id:          c.Id,
		UserId:      c.UserId,
		UserMessage: c.UserMessage,
		BotResponse: c.BotResponse,
		Branch:      c.Branch,
		Tone:        tone,
		Language:    language,
		Timestamp:   c.Timestamp,
	}
}

func (m *ChatLogMapper) ToModel(c *entity.ChatLog) *model.ChatLog {
	if c == nil {
		return nil
	}

	signals := datatypes.JSONMap{}
	if c.Tone != "" {
		signals["tone"] = c.Tone
	}
	if c.Language != "" {
		signals["language"] = c.Language
	}

	return &model.ChatLog{
		Id:          c.Id,
		UserId:      c.UserId,
		UserMessage: c.UserMessage,
		BotResponse: c.BotResponse,
		Branch:      c.Branch,
		Signals:     signals,
		Timestamp:   c.Timestamp,
	}
}

func (m *ChatLogMapper) ToEntities(models []*model.ChatLog) []*entity.ChatLog {
	entities := make([]*entity.ChatLog, len(models))
	for i, c := range models {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
