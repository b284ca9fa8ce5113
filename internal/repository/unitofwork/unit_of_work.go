package unitofwork

import (
	"context"

	"faq-chatbot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	FaqRepository() contract.FaqRepository
	ChatLogRepository() contract.ChatLogRepository
}
