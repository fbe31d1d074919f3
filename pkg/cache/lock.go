package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock that someone else re-acquired is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out short-lived exclusive locks keyed by name.
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	return &Locker{client: client, ttl: ttl}
}

// Acquire tries to take the lock once. When ok is false the lock is held by
// someone else and release is a no-op.
func (l *Locker) Acquire(ctx context.Context, key string) (release func(), ok bool, err error) {
	token := uuid.New().String()
	lockKey := fmt.Sprintf("lock:%s", key)

	ok, err = l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
	if err != nil {
		return func() {}, false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return func() {}, false, nil
	}

	release = func() {
		// the request context may already be cancelled by the time we release
		releaseScript.Run(context.Background(), l.client, []string{lockKey}, token)
	}
	return release, true, nil
}
