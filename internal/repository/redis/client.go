package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client
var redisEnabled bool

// InitRedis initializes Redis connection
func InitRedis(addr, password string) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := RedisClient.Ping(ctx).Err()
	if err != nil {
		log.Printf("[REDIS] Warning: Could not connect to Redis: %v. Move cache disabled.", err)
		redisEnabled = false
		return nil // Don't fail startup if Redis is unavailable
	}

	redisEnabled = true
	log.Println("[REDIS] Connected successfully")
	return nil
}

// IsRedisEnabled returns whether Redis is available
func IsRedisEnabled() bool {
	return redisEnabled
}

// CloseRedis closes the Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// MoveCache stores search results in Redis. It implements bot.MoveCache.
type MoveCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewMoveCache creates a new MoveCache instance
func NewMoveCache(client redis.Cmdable, ttl time.Duration) *MoveCache {
	return &MoveCache{client: client, ttl: ttl}
}

func MoveKey(board *domain.Board, cfg bot.Config) string {
	return fmt.Sprintf("move:%s:%d:%s", cfg.Algorithm, cfg.Depth, board.Key())
}

// GetMove returns the cached result for board, if any
func (c *MoveCache) GetMove(ctx context.Context, board *domain.Board, cfg bot.Config) (bot.Result, bool, error) {
	raw, err := c.client.Get(ctx, MoveKey(board, cfg)).Result()
	if errors.Is(err, redis.Nil) {
		return bot.Result{}, false, nil
	}
	if err != nil {
		return bot.Result{}, false, fmt.Errorf("redis get: %w", err)
	}

	var result bot.Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return bot.Result{}, false, fmt.Errorf("decode cached move: %w", err)
	}
	return result, true, nil
}

// SetMove stores result with the configured expiration
func (c *MoveCache) SetMove(ctx context.Context, board *domain.Board, cfg bot.Config, result bot.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode move: %w", err)
	}
	return c.client.Set(ctx, MoveKey(board, cfg), payload, c.ttl).Err()
}
