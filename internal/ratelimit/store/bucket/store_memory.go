package bucket

import (
	"context"
	"sync"
	"time"

	"mcms/internal/ratelimit/models"
)

// InMemoryBucketStore counts requests per key in fixed windows. It is used
// when Redis is not configured and as the fallback while Redis is failing.
type InMemoryBucketStore struct {
	mu      sync.Mutex
	buckets map[string]*fixedWindow
	now     func() time.Time
}

type fixedWindow struct {
	count   int
	resetAt time.Time
}

func NewInMemoryBucketStore() *InMemoryBucketStore {
	return &InMemoryBucketStore{
		buckets: make(map[string]*fixedWindow),
		now:     time.Now,
	}
}

// Allow counts one request against key and reports whether it fits in limit.
func (s *InMemoryBucketStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w := s.buckets[key]
	if w == nil || !now.Before(w.resetAt) {
		w = &fixedWindow{resetAt: now.Add(window)}
		s.buckets[key] = w
	}
	w.count++
	return newResult(w.count, limit, w.resetAt, now), nil
}

// Reset clears the counter for a key.
func (s *InMemoryBucketStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
	return nil
}

// Sweep drops windows that have already expired.
func (s *InMemoryBucketStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, w := range s.buckets {
		if !now.Before(w.resetAt) {
			delete(s.buckets, k)
		}
	}
}

func newResult(count, limit int, resetAt, now time.Time) *models.RateLimitResult {
	res := &models.RateLimitResult{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: max(limit-count, 0),
		ResetAt:   resetAt,
	}
	if !res.Allowed {
		res.RetryAfter = max(int(resetAt.Sub(now).Round(time.Second)/time.Second), 1)
	}
	return res
}
