package rediscache

import (
	"context"
	"testing"
	"time"

	"faq-chatbot-be/pkg/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, ttl time.Duration) (*ConversationRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewConversationRepository(rdb, ttl), mr
}

func TestConversationRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRepo(t, 0)

	missing, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	answer := "9時から17時です"
	conv := store.NewConversation("u1")
	conv.Context.LastAnswer = &answer
	conv.Disambiguation = store.Disambiguation{AwaitingChoice: true, Candidates: []string{"駐車場"}}
	require.NoError(t, repo.Save(ctx, conv))
	assert.True(t, mr.Exists(keyPrefix+"u1"))

	got, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, conv, got)

	require.NoError(t, repo.Delete(ctx, "u1"))
	assert.False(t, mr.Exists(keyPrefix+"u1"))
}

func TestConversationRepositoryTTL(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRepo(t, time.Hour)

	require.NoError(t, repo.Save(ctx, store.NewConversation("u1")))
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+"u1"))

	mr.FastForward(2 * time.Hour)
	got, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConversationRepositoryReportsCorruptData(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRepo(t, 0)

	require.NoError(t, mr.Set(keyPrefix+"u1", "{not json"))
	_, err := repo.Load(ctx, "u1")
	assert.Error(t, err)
}

func TestConversationRepositoryServerDown(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRepo(t, 0)
	mr.Close()

	_, err := repo.Load(ctx, "u1")
	assert.Error(t, err)
	assert.Error(t, repo.Save(ctx, store.NewConversation("u1")))
}
