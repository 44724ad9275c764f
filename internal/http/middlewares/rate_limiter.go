package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitStore counts requests per client key within a fixed window.
type RateLimitStore interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimiter rejects clients over the store's limit with 429. Store failures
// let the request through.
func RateLimiter(store RateLimitStore, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := store.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				logger.Warn("rate limit store unavailable", "error", err)
				return next(c)
			}

			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}

type bucket struct {
	count int
	start time.Time
}

// MemoryStore keeps one bucket per client. Expired buckets are dropped at
// most once per window.
type MemoryStore struct {
	limit     int
	window    time.Duration
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	return &MemoryStore{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (s *MemoryStore) Allow(_ context.Context, key string) (bool, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(now)

	b, ok := s.buckets[key]
	if !ok || now.Sub(b.start) > s.window {
		b = &bucket{start: now}
		s.buckets[key] = b
	}

	if b.count >= s.limit {
		return false, nil
	}

	b.count++
	return true, nil
}

func (s *MemoryStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) <= s.window {
		return
	}
	for key, b := range s.buckets {
		if now.Sub(b.start) > s.window {
			delete(s.buckets, key)
		}
	}
	s.lastSweep = now
}
