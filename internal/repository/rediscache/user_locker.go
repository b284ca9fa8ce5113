package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockPrefix = "chatbot:lock:"

const (
	defaultLockTTL   = 10 * time.Second
	defaultLockRetry = 10 * time.Millisecond
)

// Deletes the lock only while it still carries our token, so a holder whose
// lease expired cannot release someone else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// UserLocker is a per-user lease in Redis shared by every instance. The lease
// expires after ttl in case a holder dies without releasing it.
type UserLocker struct {
	rdb   *redis.Client
	ttl   time.Duration
	retry time.Duration
}

// NewUserLocker creates a locker. Zero durations use the defaults.
func NewUserLocker(rdb *redis.Client, ttl, retry time.Duration) *UserLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if retry <= 0 {
		retry = defaultLockRetry
	}
	return &UserLocker{rdb: rdb, ttl: ttl, retry: retry}
}

// Lock polls SET NX until the lease is ours or ctx is done
func (l *UserLocker) Lock(ctx context.Context, userID string) (func(), error) {
	key := lockPrefix + userID
	token := uuid.New().String()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to lock conversation for %s: %w", userID, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to lock conversation for %s: %w", userID, ctx.Err())
		case <-ticker.C:
		}
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		// The caller's context may already be cancelled; the release must still run.
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.rdb, []string{key}, token).Err()
	}, nil
}
