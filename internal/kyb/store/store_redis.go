package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"onyx/internal/kyb"
)

const verdictKeyPrefix = "onyx:verdict:"

// RedisVerdictStore shares verdict recall across instances. Recommended for
// distributed deployments; expiry is enforced by Redis key TTLs.
type RedisVerdictStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed verdict store.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisVerdictStore {
	return &RedisVerdictStore{client: client, ttl: ttl}
}

func (s *RedisVerdictStore) Save(ctx context.Context, verdict *kyb.Verdict) error {
	if verdict == nil || verdict.EntityID == "" {
		return nil
	}

	payload, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("marshal verdict: %w", err)
	}

	key := verdictKeyPrefix + verdict.EntityID
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save verdict: %w", err)
	}
	return nil
}

func (s *RedisVerdictStore) Get(ctx context.Context, entityID string) (*kyb.Verdict, error) {
	key := verdictKeyPrefix + entityID
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load verdict: %w", err)
	}

	var verdict kyb.Verdict
	if err := json.Unmarshal(payload, &verdict); err != nil {
		return nil, fmt.Errorf("unmarshal verdict: %w", err)
	}
	return &verdict, nil
}
