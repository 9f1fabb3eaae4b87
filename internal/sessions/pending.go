package sessions

import (
	"sync"
	"time"

	"github.com/notavoz/notavoz/domain/entities"
)

// PendingStore caches at most one not-yet-downloaded audio per user while
// the user picks an output shape. Entries expire after a fixed TTL measured
// from insertion; expiry is enforced lazily on the next Take, never by a
// background sweep.
type PendingStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[int64]entities.PendingSelection
	now     func() time.Time
}

// NewPendingStore creates a store with the given entry TTL.
func NewPendingStore(ttl time.Duration) *PendingStore {
	return &PendingStore{
		ttl:     ttl,
		entries: make(map[int64]entities.PendingSelection),
		now:     time.Now,
	}
}

// Put stores the selection for the user, overwriting any previous one. The
// single-slot policy is deliberate: a new audio always supersedes the old.
func (s *PendingStore) Put(userID int64, selection entities.PendingSelection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selection.CreatedAt = s.now()
	s.entries[userID] = selection
}

// Take removes and returns the user's pending selection. The entry is
// consumed whether or not it was still live; an expired or absent entry
// reports ok=false.
func (s *PendingStore) Take(userID int64) (entities.PendingSelection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selection, ok := s.entries[userID]
	if !ok {
		return entities.PendingSelection{}, false
	}

	delete(s.entries, userID)

	if s.now().Sub(selection.CreatedAt) > s.ttl {
		return entities.PendingSelection{}, false
	}

	return selection, true
}
