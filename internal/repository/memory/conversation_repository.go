package memory

import (
	"context"
	"time"

	"faq-chatbot-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type ConversationRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewConversationRepository keeps conversations in process memory. A zero ttl
// keeps them for the life of the process; otherwise idle users are evicted.
func NewConversationRepository(ttl time.Duration) *ConversationRepository {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &ConversationRepository{
		cache: cache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

func key(userID string) string {
	return "conversation:" + userID
}

// Save stores a copy so later mutation by the caller is not visible
func (r *ConversationRepository) Save(ctx context.Context, conv *store.Conversation) error {
	r.cache.Set(key(conv.UserID), conv.Clone(), cache.DefaultExpiration)
	return nil
}

func (r *ConversationRepository) Load(ctx context.Context, userID string) (*store.Conversation, error) {
	if x, found := r.cache.Get(key(userID)); found {
		return x.(*store.Conversation).Clone(), nil
	}
	return nil, nil
}

func (r *ConversationRepository) Delete(ctx context.Context, userID string) error {
	r.cache.Delete(key(userID))
	return nil
}
