package service

import (
	"context"
	"encoding/json"

	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/pkg/mailer"
	"faq-chatbot-be/internal/repository/unitofwork"
	"faq-chatbot-be/pkg/conversation"
	"faq-chatbot-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber      message.Subscriber
	topicName       string
	uowFactory      unitofwork.RepositoryFactory
	emailService    mailer.IEmailService
	escalationEmail string
	eventPublisher  EventPublisher
	logger          logger.ILogger
}

// NewConsumerService persists queued chat logs. Records whose branch needs a
// human are mailed to escalationEmail when both it and emailService are set,
// and announced on the event bus when eventPublisher is non-nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	escalationEmail string,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:      subscriber,
		topicName:       topicName,
		uowFactory:      uowFactory,
		emailService:    emailService,
		escalationEmail: escalationEmail,
		eventPublisher:  eventPublisher,
		logger:          log,
	}
}

// Consume subscribes and processes messages in the background until ctx is done
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks. A redelivered chat log would only fail the
// same way again and the reply has already been sent.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var record conversation.LogRecord
	if err := json.Unmarshal(msg.Payload, &record); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal chat log", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	err := uow.ChatLogRepository().Create(ctx, &entity.ChatLog{
		UserId:      record.UserID,
		UserMessage: record.UserMessage,
		BotResponse: record.BotResponse,
		Branch:      string(record.Branch),
		Tone:        string(record.Tone),
		Language:    string(record.Language),
		Timestamp:   record.Timestamp,
	})
	if err != nil {
		cs.logger.Error("ConsumerService", "Failed to persist chat log", map[string]interface{}{
			"user_id": record.UserID,
			"branch":  record.Branch,
			"error":   err.Error(),
		})
	}

	if record.Branch.NeedsHuman() {
		cs.escalate(ctx, record)
	}
}

func (cs *consumerService) escalate(ctx context.Context, record conversation.LogRecord) {
	if cs.eventPublisher != nil {
		event := events.NewChatEscalated(record.UserID, record.UserMessage, string(record.Branch), record.Timestamp)
		if err := cs.eventPublisher.Publish(ctx, event); err != nil {
			cs.logger.Warn("ConsumerService", "Failed to publish escalation event", map[string]interface{}{
				"user_id": record.UserID,
				"error":   err.Error(),
			})
		}
	}

	if cs.emailService == nil || cs.escalationEmail == "" {
		return
	}
	err := cs.emailService.SendEscalation(cs.escalationEmail, mailer.Escalation{
		UserId:      record.UserID,
		UserMessage: record.UserMessage,
		BotResponse: record.BotResponse,
		Branch:      string(record.Branch),
		Timestamp:   record.Timestamp,
	})
	if err != nil {
		cs.logger.Error("ConsumerService", "Failed to send escalation email", map[string]interface{}{
			"user_id": record.UserID,
			"error":   err.Error(),
		})
	}
}
