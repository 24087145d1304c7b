// Package ratelimit caps requests per client IP per time window.
package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

const counterTimeout = 250 * time.Millisecond

// Counter increments a key that expires after ttl.
type Counter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// WindowStore is a fixed-window RateLimiterStore shared by every server
// instance through Counter. Counter errors let the request through.
type WindowStore struct {
	counter Counter
	limit   int64
	window  time.Duration
	logger  zerolog.Logger
	now     func() time.Time
}

var _ middleware.RateLimiterStore = (*WindowStore)(nil)

// NewWindowStore allows limit requests per identifier per window.
func NewWindowStore(counter Counter, limit int, window time.Duration, logger zerolog.Logger) *WindowStore {
	return &WindowStore{
		counter: counter,
		limit:   int64(limit),
		window:  window,
		logger:  logger,
		now:     time.Now,
	}
}

// Allow implements middleware.RateLimiterStore.
func (s *WindowStore) Allow(identifier string) (bool, error) {
	bucket := s.now().UnixNano() / int64(s.window)
	key := fmt.Sprintf("ratelimit:%s:%d", identifier, bucket)

	ctx, cancel := context.WithTimeout(context.Background(), counterTimeout)
	defer cancel()

	n, err := s.counter.Incr(ctx, key, s.window)
	if err != nil {
		s.logger.Warn().Err(err).Str("identifier", identifier).Msg("rate limit counter unavailable, allowing request")
		return true, nil
	}
	return n <= s.limit, nil
}

// NewMemoryStore returns a WindowStore counting in process memory, for
// single-instance deployments without Redis.
func NewMemoryStore(limit int, window time.Duration, logger zerolog.Logger) *WindowStore {
	return NewWindowStore(NewMemoryCounter(), limit, window, logger)
}

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

// MemoryCounter is an in-process Counter. Expired keys are swept at most
// once per ttl.
type MemoryCounter struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	lastSweep time.Time
	now       func() time.Time
}

var _ Counter = (*MemoryCounter)(nil)

// NewMemoryCounter returns an empty counter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{entries: make(map[string]memoryEntry), now: time.Now}
}

// Incr implements Counter with the same reset-TTL-on-increment behavior as
// the Redis counter.
func (m *MemoryCounter) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= ttl {
		for k, e := range m.entries {
			if !now.Before(e.expiresAt) {
				delete(m.entries, k)
			}
		}
		m.lastSweep = now
	}

	e, ok := m.entries[key]
	if !ok || !now.Before(e.expiresAt) {
		e = memoryEntry{}
	}
	e.count++
	e.expiresAt = now.Add(ttl)
	m.entries[key] = e
	return e.count, nil
}

// Len returns the number of live and not yet swept keys.
func (m *MemoryCounter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Middleware rejects requests over the store's limit with 429.
func Middleware(store middleware.RateLimiterStore, skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: skipper,
		Store:   store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again later")
		},
	})
}
