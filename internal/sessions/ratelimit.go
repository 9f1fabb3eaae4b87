package sessions

import (
	"sync"
	"time"
)

// RateLimiter enforces a per-user budget of requests inside a trailing
// window. The prune, check and register steps happen under one lock so two
// concurrent calls for the same user can never both see room.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	requests map[int64][]time.Time
	now      func() time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		window:   window,
		requests: make(map[int64][]time.Time),
		now:      time.Now,
	}
}

// TryAcquire checks whether the user has budget left and, if so, registers
// the request atomically. Stale timestamps are pruned on every call, so a
// user's window never accumulates beyond the limit.
func (l *RateLimiter) TryAcquire(userID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.requests[userID][:0]
	for _, ts := range l.requests[userID] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.limit {
		l.requests[userID] = kept
		return false
	}

	l.requests[userID] = append(kept, now)
	return true
}
