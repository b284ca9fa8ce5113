package service

import (
	"context"
	"encoding/json"
	"fmt"

	"faq-chatbot-be/pkg/conversation"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// IPublisherService queues chat log records; it satisfies conversation.LogSink
type IPublisherService interface {
	Append(ctx context.Context, record conversation.LogRecord) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (ps *publisherService) Append(ctx context.Context, record conversation.LogRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal chat log: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)
	msg.SetContext(ctx)
	if err := ps.publisher.Publish(ps.topicName, msg); err != nil {
		return fmt.Errorf("failed to publish chat log: %w", err)
	}
	return nil
}
