package challenge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bluele/gcache"
	"github.com/redis/go-redis/v9"
)

// Registry remembers issued challenges until they are consumed or expire.
type Registry interface {
	Put(ctx context.Context, challenge string, ttl time.Duration) error
	// Consume removes the challenge and reports whether it was present and unexpired.
	Consume(ctx context.Context, challenge string) (bool, error)
}

// MemoryRegistry keeps challenges in a bounded in-process LRU cache.
type MemoryRegistry struct {
	mu    sync.Mutex
	cache gcache.Cache
}

// NewMemoryRegistry creates an in-memory registry holding at most capacity challenges.
func NewMemoryRegistry(capacity int) *MemoryRegistry {
	if capacity <= 0 {
		capacity = 10000
	}
	return &MemoryRegistry{cache: gcache.New(capacity).LRU().Build()}
}

func (r *MemoryRegistry) Put(_ context.Context, challenge string, ttl time.Duration) error {
	return r.cache.SetWithExpire(challenge, struct{}{}, ttl)
}

func (r *MemoryRegistry) Consume(_ context.Context, challenge string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.cache.Get(challenge); err != nil {
		if errors.Is(err, gcache.KeyNotFoundError) {
			return false, nil
		}
		return false, err
	}
	return r.cache.Remove(challenge), nil
}

const redisKeyPrefix = "kilt-attester:challenge:"

// RedisRegistry shares challenges between replicas.
type RedisRegistry struct {
	client redis.UniversalClient
}

// NewRedisRegistry creates a registry backed by redis.
func NewRedisRegistry(client redis.UniversalClient) *RedisRegistry {
	return &RedisRegistry{client: client}
}

func (r *RedisRegistry) Put(ctx context.Context, challenge string, ttl time.Duration) error {
	ok, err := r.client.SetNX(ctx, redisKeyPrefix+challenge, 1, ttl).Result()
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	if !ok {
		return fmt.Errorf("challenge collision")
	}
	return nil
}

func (r *RedisRegistry) Consume(ctx context.Context, challenge string) (bool, error) {
	err := r.client.GetDel(ctx, redisKeyPrefix+challenge).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("redis getdel: %w", err)
	}
	return true, nil
}
