package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter decides whether subject may perform one more action.
type RateLimiter interface {
	Allow(ctx context.Context, subject string) (bool, error)
}

// RedisLimiter shares a fixed window across every instance behind the same Redis.
type RedisLimiter struct {
	redis  *RedisService
	action string
	limit  int
	window time.Duration
}

func NewRedisLimiter(redis *RedisService, action string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		redis:  redis,
		action: action,
		limit:  limit,
		window: window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, subject string) (bool, error) {
	return l.redis.CheckRateLimit(ctx, subject, l.action, l.limit, l.window)
}

const (
	// Stale buckets are only pruned once the map grows past this size.
	cleanupThreshold = 500
	maxIdleAge       = 10 * time.Minute

	DefaultMaxSubjects = 10_000
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	lastUse  uint64
}

// LocalLimiter keeps one token bucket per subject in process memory. Once
// maxSubjects buckets exist the least recently used one is evicted.
type LocalLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	r           rate.Limit
	b           int
	maxSubjects int
	uses        uint64
}

func NewLocalLimiter(perMinute, burst int) *LocalLimiter {
	return &LocalLimiter{
		buckets:     make(map[string]*bucket),
		r:           rate.Limit(float64(perMinute) / 60),
		b:           burst,
		maxSubjects: DefaultMaxSubjects,
	}
}

// WithMaxSubjects caps the number of tracked subjects. Values below 1 are ignored.
func (l *LocalLimiter) WithMaxSubjects(n int) *LocalLimiter {
	if n > 0 {
		l.maxSubjects = n
	}
	return l
}

func (l *LocalLimiter) Allow(_ context.Context, subject string) (bool, error) {
	return l.limiterFor(subject).Allow(), nil
}

func (l *LocalLimiter) limiterFor(subject string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	if len(l.buckets) > cleanupThreshold {
		cutoff := now.Add(-maxIdleAge)
		for k, b := range l.buckets {
			if b.lastSeen.Before(cutoff) {
				delete(l.buckets, k)
			}
		}
	}

	b, ok := l.buckets[subject]
	if !ok {
		if len(l.buckets) >= l.maxSubjects {
			l.evictOldest()
		}
		b = &bucket{limiter: rate.NewLimiter(l.r, l.b)}
		l.buckets[subject] = b
	}
	l.uses++
	b.lastSeen = now
	b.lastUse = l.uses

	return b.limiter
}

func (l *LocalLimiter) evictOldest() {
	var (
		oldest    string
		oldestUse uint64
		found     bool
	)
	for k, b := range l.buckets {
		if !found || b.lastUse < oldestUse {
			oldest, oldestUse, found = k, b.lastUse, true
		}
	}
	if found {
		delete(l.buckets, oldest)
	}
}

// Len reports how many subjects currently hold a bucket.
func (l *LocalLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
