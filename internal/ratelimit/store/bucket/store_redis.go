package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mcms/internal/ratelimit/models"
)

// RedisBucketStore keeps fixed-window counters in Redis so every instance
// shares one budget per client.
type RedisBucketStore struct {
	client redis.Cmdable
}

func NewRedisBucketStore(client redis.Cmdable) *RedisBucketStore {
	return &RedisBucketStore{client: client}
}

// Allow increments the key and reads its TTL in one round trip. The first
// hit of a window sets the expiry.
func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis rate limit pipeline: %w", err)
	}

	count := int(incr.Val())
	remaining := ttl.Val()
	if count == 1 || remaining < 0 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return nil, fmt.Errorf("redis rate limit expire: %w", err)
		}
		remaining = window
	}

	now := time.Now()
	return newResult(count, limit, now.Add(remaining), now), nil
}

func (s *RedisBucketStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
