// Package rediscache stores conversation state in Redis so that several
// server instances can share it.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"faq-chatbot-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "chatbot:conversation:"

type ConversationRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewConversationRepository stores state as JSON. A zero ttl never expires keys.
func NewConversationRepository(rdb *redis.Client, ttl time.Duration) *ConversationRepository {
	return &ConversationRepository{rdb: rdb, ttl: ttl}
}

func (r *ConversationRepository) Save(ctx context.Context, conv *store.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}
	if err := r.rdb.Set(ctx, keyPrefix+conv.UserID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save conversation for %s: %w", conv.UserID, err)
	}
	return nil
}

func (r *ConversationRepository) Load(ctx context.Context, userID string) (*store.Conversation, error) {
	data, err := r.rdb.Get(ctx, keyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load conversation for %s: %w", userID, err)
	}

	var conv store.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation for %s: %w", userID, err)
	}
	return &conv, nil
}

func (r *ConversationRepository) Delete(ctx context.Context, userID string) error {
	return r.rdb.Del(ctx, keyPrefix+userID).Err()
}
