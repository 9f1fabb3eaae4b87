package sessions

import (
	"testing"
	"time"
)

func TestLockoutTriggersAfterThreshold(t *testing.T) {
	clock := newFakeClock()
	tracker := NewLockoutTracker(5, 10*time.Minute)
	tracker.now = clock.Now

	for i := 0; i < 4; i++ {
		tracker.RegisterFailure(42)
		if locked, _ := tracker.CheckLockout(42); locked {
			t.Fatalf("Should not be locked after %d failures", i+1)
		}
	}

	tracker.RegisterFailure(42)

	locked, remaining := tracker.CheckLockout(42)
	if !locked {
		t.Fatal("Expected lockout after 5 failures")
	}

	if remaining <= 9*time.Minute || remaining > 10*time.Minute {
		t.Errorf("Expected remaining time close to 10 minutes, got %v", remaining)
	}
}

func TestLockoutClearsCompletelyAfterElapsing(t *testing.T) {
	clock := newFakeClock()
	tracker := NewLockoutTracker(5, 10*time.Minute)
	tracker.now = clock.Now

	for i := 0; i < 5; i++ {
		tracker.RegisterFailure(42)
	}

	clock.Advance(10*time.Minute + time.Second)

	if locked, _ := tracker.CheckLockout(42); locked {
		t.Fatal("Lockout should have elapsed")
	}

	// The counter was reset outright, so it takes another 5 failures to
	// lock again, not one.
	tracker.RegisterFailure(42)
	if locked, _ := tracker.CheckLockout(42); locked {
		t.Error("A single failure after reset should not lock")
	}
}

func TestClearFailuresRemovesState(t *testing.T) {
	clock := newFakeClock()
	tracker := NewLockoutTracker(5, 10*time.Minute)
	tracker.now = clock.Now

	for i := 0; i < 5; i++ {
		tracker.RegisterFailure(42)
	}

	tracker.ClearFailures(42)

	if locked, remaining := tracker.CheckLockout(42); locked || remaining != 0 {
		t.Errorf("Expected clean state after ClearFailures, got locked=%v remaining=%v", locked, remaining)
	}
}

func TestLockoutIsolatesUsers(t *testing.T) {
	clock := newFakeClock()
	tracker := NewLockoutTracker(5, 10*time.Minute)
	tracker.now = clock.Now

	for i := 0; i < 5; i++ {
		tracker.RegisterFailure(1)
	}

	if locked, _ := tracker.CheckLockout(2); locked {
		t.Error("Another user's failures must not lock this user")
	}
}
