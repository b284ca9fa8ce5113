package contract

import (
	"context"

	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/repository/specification"
)

// ChatLogRepository is append-only
type ChatLogRepository interface {
	Create(ctx context.Context, log *entity.ChatLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
