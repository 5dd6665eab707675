package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	ErrLockFailed = errors.New("failed to acquire distributed lock")
)

// DistributedLock is a redis SetNX lock with an expiry to avoid
// deadlocks and a value check on release so a holder whose lock expired
// cannot delete a successor's lock.
type DistributedLock struct {
	client     *redis.Client
	key        string
	value      string
	expiration time.Duration
}

func NewDistributedLock(client *redis.Client, key, value string, expiration time.Duration) *DistributedLock {
	return &DistributedLock{
		client:     client,
		key:        key,
		value:      value,
		expiration: expiration,
	}
}

// TryLock attempts the lock once without blocking.
func (l *DistributedLock) TryLock(ctx context.Context) (bool, error) {
	success, err := l.client.SetNX(ctx, l.key, l.value, l.expiration).Result()
	if err != nil {
		return false, err
	}
	return success, nil
}

// Lock retries until acquired or maxRetries attempts are exhausted.
func (l *DistributedLock) Lock(ctx context.Context, retryInterval time.Duration, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		success, err := l.TryLock(ctx)
		if err != nil {
			return err
		}
		if success {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return ErrLockFailed
}

// Unlock releases the lock only if this instance still holds it. The
// check-and-delete runs as a Lua script so it is atomic.
func (l *DistributedLock) Unlock(ctx context.Context) error {
	script := `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		else
			return 0
		end
	`
	_, err := l.client.Eval(ctx, script, []string{l.key}, l.value).Result()
	return err
}

// NewPackLock serializes redemption attempts against a single pack
// offer. Locking per pack (rather than per player) keeps a player free
// to act elsewhere while a claim is in flight, while two concurrent
// claims on the same pack cannot both pass the cache read.
func NewPackLock(client *redis.Client, packID, requestValue string) *DistributedLock {
	key := fmt.Sprintf("idol:pack:lock:%s", packID)
	return NewDistributedLock(client, key, requestValue, 10*time.Second)
}
