package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ModelStore holds computed proforma payloads keyed by model ID so a
// client can re-fetch a result it already generated. Payloads are opaque
// bytes to the store.
type ModelStore interface {
	Save(ctx context.Context, id string, payload []byte) error
	Get(ctx context.Context, id string) ([]byte, bool, error)
}

// MemoryStore is the default in-process model store.
type MemoryStore struct {
	mu     sync.RWMutex
	models map[string][]byte
}

// NewMemoryStore creates an empty in-process model store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{models: make(map[string][]byte)}
}

// Save stores the payload under the given ID.
func (s *MemoryStore) Save(_ context.Context, id string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(payload))
	copy(stored, payload)
	s.models[id] = stored
	return nil
}

// Get returns the payload stored under the given ID, if present.
func (s *MemoryStore) Get(_ context.Context, id string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.models[id]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, true, nil
}

// redisKeyPrefix namespaces model keys within a shared Redis instance.
const redisKeyPrefix = "proforma:model:"

// RedisStore backs the model store with Redis so stored proformas survive
// process restarts and can be shared between replicas.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed model store. A zero TTL keeps
// models indefinitely.
func NewRedisStore(addr string, ttl time.Duration) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{client: client, ttl: ttl}
}

// Save stores the payload under the given ID.
func (s *RedisStore) Save(ctx context.Context, id string, payload []byte) error {
	if err := s.client.Set(ctx, redisKeyPrefix+id, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store model %s: %w", id, err)
	}
	return nil
}

// Get returns the payload stored under the given ID, if present.
func (s *RedisStore) Get(ctx context.Context, id string) ([]byte, bool, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to fetch model %s: %w", id, err)
	}
	return payload, true, nil
}
