package rediscache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/pkg/conversation"
	"faq-chatbot-be/pkg/matcher"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb, mr
}

func TestUserLockerExcludesSecondHolder(t *testing.T) {
	rdb, mr := newClient(t)
	locker := NewUserLocker(rdb, time.Minute, time.Millisecond)

	unlock, err := locker.Lock(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, mr.Exists(lockPrefix+"u1"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "u1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// other users are not affected
	unlockOther, err := locker.Lock(context.Background(), "u2")
	require.NoError(t, err)
	unlockOther()

	unlock()
	assert.False(t, mr.Exists(lockPrefix+"u1"))
}

func TestUserLockerExpiredLeaseIsNotReleasedByOldHolder(t *testing.T) {
	rdb, mr := newClient(t)
	locker := NewUserLocker(rdb, time.Second, time.Millisecond)

	stale, err := locker.Lock(context.Background(), "u1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	fresh, err := locker.Lock(context.Background(), "u1")
	require.NoError(t, err)

	stale()
	assert.True(t, mr.Exists(lockPrefix+"u1"), "stale release removed the new lease")

	fresh()
	assert.False(t, mr.Exists(lockPrefix+"u1"))
}

type staticCorpus []matcher.Entry

func (c staticCorpus) FetchAll(ctx context.Context) ([]matcher.Entry, error) {
	return c, nil
}

// Two instances sharing Redis must not both consume one pending choice.
func TestSharedStoreChoiceConsumedOnce(t *testing.T) {
	rdb, _ := newClient(t)
	states := NewConversationRepository(rdb, time.Hour)

	pool := []string{"駐車場", "試合会場", "営業時間"}
	corpus := staticCorpus{}
	for _, label := range pool {
		corpus = append(corpus, matcher.Entry{Question: label, Answer: "A:" + label})
	}

	newInstance := func() *conversation.Orchestrator {
		return conversation.NewOrchestrator(corpus, states, nil, logger.NewNopLogger(),
			conversation.WithSuggestionPool(pool),
			conversation.WithLocker(NewUserLocker(rdb, time.Minute, time.Millisecond)),
		)
	}
	instances := []*conversation.Orchestrator{newInstance(), newInstance()}

	ctx := context.Background()
	for round := 0; round < 20; round++ {
		user := fmt.Sprintf("u%d", round)
		instances[0].Respond(ctx, user, "ペンギン")

		conv, err := states.Load(ctx, user)
		require.NoError(t, err)
		require.NotNil(t, conv)
		require.True(t, conv.Disambiguation.AwaitingChoice)
		want := "A:" + conv.Disambiguation.Candidates[1]

		replies := make([]string, len(instances))
		var wg sync.WaitGroup
		for i, inst := range instances {
			wg.Add(1)
			go func(i int, inst *conversation.Orchestrator) {
				defer wg.Done()
				replies[i] = inst.Respond(ctx, user, "2")
			}(i, inst)
		}
		wg.Wait()

		consumed := 0
		for _, r := range replies {
			if r == want {
				consumed++
			}
		}
		assert.Equal(t, 1, consumed, "round %d: %v", round, replies)
	}
}
