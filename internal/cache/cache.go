// Package cache provides an optional Redis-backed cache of validated
// decision payloads keyed by prompt hash. A hit short-circuits the
// text-generation call; the pipeline works identically with no cache wired.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "loan:decision:"

// DecisionCache stores serialized decisions under their prompt hash.
type DecisionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to the Redis instance at addr. ttl <= 0 means entries never
// expire.
func New(addr string, ttl time.Duration) *DecisionCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &DecisionCache{client: rdb, ttl: ttl}
}

// NewWithClient wraps an existing client, mainly for tests.
func NewWithClient(client *redis.Client, ttl time.Duration) *DecisionCache {
	return &DecisionCache{client: client, ttl: ttl}
}

// Get returns the cached decision JSON for the prompt hash, if present.
// Redis errors degrade to a miss; the cache never blocks a decision.
func (c *DecisionCache) Get(ctx context.Context, promptHash string) (string, bool) {
	val, err := c.client.Get(ctx, keyPrefix+promptHash).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores the decision JSON under the prompt hash.
func (c *DecisionCache) Set(ctx context.Context, promptHash, decisionJSON string) error {
	return c.client.Set(ctx, keyPrefix+promptHash, decisionJSON, c.ttl).Err()
}

// Close releases the underlying connection pool.
func (c *DecisionCache) Close() error {
	return c.client.Close()
}
