package cache

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(redisURL string) (*RedisCache, error) {
	// Parse redis URL (redis://host:port or redis://host:port/db)
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Printf("Connected to Redis at %s", redisURL)
	return &RedisCache{client: client}, nil
}

// IsUsedWord reports whether a word is in the chat's used-word set.
func (c *RedisCache) IsUsedWord(ctx context.Context, chatID int64, word string) (bool, error) {
	return c.client.SIsMember(ctx, usedWordsKey(chatID), word).Result()
}

// AddUsedWord adds a word to the chat's used-word set. No TTL: history
// outlives individual games.
func (c *RedisCache) AddUsedWord(ctx context.Context, chatID int64, word string) error {
	return c.client.SAdd(ctx, usedWordsKey(chatID), word).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func usedWordsKey(chatID int64) string {
	return fmt.Sprintf("chat:%d:words", chatID)
}
