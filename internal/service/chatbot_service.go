package service

import (
	"context"
	"errors"

	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/pkg/conversation"
)

// Responder is the conversation pipeline; *conversation.Orchestrator satisfies it
type Responder interface {
	Respond(ctx context.Context, userID, text string) string
}

type IChatbotService interface {
	// SendChat answers one message. req.UserId must already be resolved.
	SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	// Reply is SendChat for channels that carry their own user identity.
	Reply(ctx context.Context, userId, text string) string
}

type chatbotService struct {
	responder Responder
}

var _ Responder = (*conversation.Orchestrator)(nil)

func NewChatbotService(responder Responder) IChatbotService {
	return &chatbotService{responder: responder}
}

func (cs *chatbotService) SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if req.UserId == "" {
		return nil, errors.New("user id is required")
	}

	return &dto.ChatResponse{
		UserId:   req.UserId,
		Response: cs.responder.Respond(ctx, req.UserId, req.Message),
	}, nil
}

func (cs *chatbotService) Reply(ctx context.Context, userId, text string) string {
	return cs.responder.Respond(ctx, userId, text)
}
