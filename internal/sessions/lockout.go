package sessions

import (
	"sync"
	"time"
)

type lockoutState struct {
	failures    int
	lockedUntil time.Time
}

// LockoutTracker counts failed authentication attempts per user and blocks
// further attempts for a fixed period once the threshold is crossed.
type LockoutTracker struct {
	mu        sync.Mutex
	threshold int
	duration  time.Duration
	states    map[int64]*lockoutState
	now       func() time.Time
}

// NewLockoutTracker creates a tracker that locks a user out for duration
// after threshold cumulative failures.
func NewLockoutTracker(threshold int, duration time.Duration) *LockoutTracker {
	return &LockoutTracker{
		threshold: threshold,
		duration:  duration,
		states:    make(map[int64]*lockoutState),
		now:       time.Now,
	}
}

// CheckLockout reports whether the user is currently locked out and how long
// remains. An elapsed lockout is cleared entirely on this call, counter
// included: there is no partial decay.
func (t *LockoutTracker) CheckLockout(userID int64) (bool, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.states[userID]
	if !ok {
		return false, 0
	}

	now := t.now()
	if state.lockedUntil.After(now) {
		return true, state.lockedUntil.Sub(now)
	}

	if !state.lockedUntil.IsZero() {
		delete(t.states, userID)
	}

	return false, 0
}

// RegisterFailure records one failed attempt and arms the lockout once the
// threshold is reached.
func (t *LockoutTracker) RegisterFailure(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.states[userID]
	if !ok {
		state = &lockoutState{}
		t.states[userID] = state
	}

	state.failures++
	if state.failures >= t.threshold {
		state.lockedUntil = t.now().Add(t.duration)
	}
}

// ClearFailures removes all state for the user, e.g. after a successful
// authentication.
func (t *LockoutTracker) ClearFailures(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.states, userID)
}
