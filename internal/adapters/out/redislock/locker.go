// Package redislock provides a best-effort mutual exclusion lock in Redis so that
// only one service instance runs a dispatch cycle at a time.
//
// A lock is a key set with SET NX and a TTL. The value is a random token, and
// release deletes the key only while it still holds that token, so an instance
// whose lock expired cannot release somebody else's.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "dispatch:lock:"

var ErrLockNotHeld = errors.New("lock is not held")

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Connect parses url, opens a client and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLocker returns a locker whose locks expire after ttl unless released.
func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	return &Locker{client: client, ttl: ttl}
}

// Lease is a held lock.
type Lease struct {
	client *redis.Client
	key    string
	token  string
}

// TryLock acquires the lock called name without waiting. It returns nil, nil
// when another holder has it.
func (l *Locker) TryLock(ctx context.Context, name string) (*Lease, error) {
	key := keyPrefix + name
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", name, err)
	}
	if !ok {
		return nil, nil //nolint:nilnil // lock held elsewhere
	}

	return &Lease{client: l.client, key: key, token: token}, nil
}

// Release frees the lock. It returns ErrLockNotHeld when the lock already expired
// or was taken over.
func (l *Lease) Release(ctx context.Context) error {
	deleted, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Int()
	if err != nil {
		return fmt.Errorf("release lock %s: %w", l.key, err)
	}
	if deleted == 0 {
		return ErrLockNotHeld
	}
	return nil
}
