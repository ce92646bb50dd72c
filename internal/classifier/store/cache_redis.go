package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"riskengine/internal/classifier"
)

// DecisionCache memoizes decisions. Evaluation is a pure function of the
// response set and rulepack, so a cache hit is always correct for the same
// fingerprint + rulepack version key.
type DecisionCache interface {
	Get(ctx context.Context, key string) (*classifier.ClassificationDecision, error)
	Set(ctx context.Context, key string, decision *classifier.ClassificationDecision) error
}

// RedisCache is a Redis-backed DecisionCache with a bounded TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*classifier.ClassificationDecision, error) {
	data, err := c.client.Get(ctx, cacheKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("decision cache get: %w", err)
	}
	var decision classifier.ClassificationDecision
	if err := json.Unmarshal(data, &decision); err != nil {
		return nil, fmt.Errorf("decision cache decode: %w", err)
	}
	return &decision, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, decision *classifier.ClassificationDecision) error {
	data, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("decision cache encode: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("decision cache set: %w", err)
	}
	return nil
}

func cacheKey(key string) string {
	return "riskengine:decision:" + key
}
