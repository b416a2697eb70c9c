package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SebastianoFazzino/number-game/internal/config"
)

type RedisService struct {
	client *redis.Client
}

func NewRedisService(ctx context.Context, cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisService{client: client}, nil
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

// CheckRateLimit counts one hit for subject/action in a fixed window and
// reports whether the subject is still within limit. A counter left without
// a TTL gets its window re-applied on the next hit.
func (s *RedisService) CheckRateLimit(ctx context.Context, subject, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(KeyRateLimit, action, subject)

	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	// TTL reports -1 for a key that exists without an expiry.
	if ttl.Val() < 0 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return incr.Val() <= int64(limit), nil
}

// RateLimitTTL returns the time left in subject's current window.
func (s *RedisService) RateLimitTTL(ctx context.Context, subject, action string) (time.Duration, error) {
	key := fmt.Sprintf(KeyRateLimit, action, subject)
	return s.client.TTL(ctx, key).Result()
}

func (s *RedisService) ClearRateLimit(ctx context.Context, subject, action string) error {
	key := fmt.Sprintf(KeyRateLimit, action, subject)
	return s.client.Del(ctx, key).Err()
}
