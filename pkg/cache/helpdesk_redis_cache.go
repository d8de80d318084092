// Package cache implements the Redis-backed cache used for enrichment
// results and chat session history.
package cache

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RedisCache wraps a redis client with JSON helpers.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a cache over an existing redis client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// GetJSON loads and unmarshals a JSON value. The second return is false on a
// cache miss; a miss is not an error.
func (c *RedisCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals and stores a value with a TTL.
func (c *RedisCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes a key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// =============================================================================
// Chat History
// =============================================================================

// historyTTL bounds how long an idle chat transcript survives.
const historyTTL = 24 * time.Hour

// ChatHistoryStore keeps a rolling per-session transcript in a Redis list.
type ChatHistoryStore struct {
	client  *redis.Client
	maxSize int64
}

// NewChatHistoryStore creates a history store keeping at most maxSize lines
// per session.
func NewChatHistoryStore(client *redis.Client, maxSize int64) *ChatHistoryStore {
	if maxSize <= 0 {
		maxSize = 50
	}
	return &ChatHistoryStore{client: client, maxSize: maxSize}
}

// Append adds one line to a session transcript and refreshes its TTL.
func (s *ChatHistoryStore) Append(ctx context.Context, sessionID, message string) error {
	key := "chat_history:" + sessionID
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, message)
	pipe.LTrim(ctx, key, -s.maxSize, -1)
	pipe.Expire(ctx, key, historyTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Recent returns the last n lines of a session transcript.
func (s *ChatHistoryStore) Recent(ctx context.Context, sessionID string, n int64) ([]string, error) {
	key := "chat_history:" + sessionID
	return s.client.LRange(ctx, key, -n, -1).Result()
}
