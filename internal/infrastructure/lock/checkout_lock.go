package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CheckoutLock serializes checkout attempts per user. Acquire returns
// false when another checkout for the same user is already in flight.
type CheckoutLock interface {
	Acquire(ctx context.Context, userID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, userID string) error
}

// RedisCheckoutLock implements CheckoutLock using Redis SETNX.
// The TTL guards against locks leaking when a process dies mid-checkout.
type RedisCheckoutLock struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisCheckoutLock creates a checkout lock backed by an existing Redis client
func NewRedisCheckoutLock(client *redis.Client) *RedisCheckoutLock {
	return &RedisCheckoutLock{
		client:    client,
		keyPrefix: "checkout:lock:",
	}
}

func (l *RedisCheckoutLock) key(userID string) string {
	return l.keyPrefix + userID
}

// Acquire attempts to take the per-user lock
func (l *RedisCheckoutLock) Acquire(ctx context.Context, userID string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(userID), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire checkout lock: %w", err)
	}
	return ok, nil
}

// Release frees the per-user lock
func (l *RedisCheckoutLock) Release(ctx context.Context, userID string) error {
	if err := l.client.Del(ctx, l.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to release checkout lock: %w", err)
	}
	return nil
}

var _ CheckoutLock = (*RedisCheckoutLock)(nil)

// InMemoryCheckoutLock provides an in-memory implementation for testing
// and single-instance deployments without Redis.
type InMemoryCheckoutLock struct {
	mu    sync.Mutex
	locks map[string]time.Time // userID -> expiration
}

// NewInMemoryCheckoutLock creates a new in-memory checkout lock
func NewInMemoryCheckoutLock() *InMemoryCheckoutLock {
	return &InMemoryCheckoutLock{
		locks: make(map[string]time.Time),
	}
}

// Acquire attempts to take the per-user lock
func (l *InMemoryCheckoutLock) Acquire(_ context.Context, userID string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if expiration, exists := l.locks[userID]; exists && time.Now().Before(expiration) {
		return false, nil
	}
	l.locks[userID] = time.Now().Add(ttl)
	return true, nil
}

// Release frees the per-user lock
func (l *InMemoryCheckoutLock) Release(_ context.Context, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.locks, userID)
	return nil
}

var _ CheckoutLock = (*InMemoryCheckoutLock)(nil)
