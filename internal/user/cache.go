package user

import (
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/platify/platify-core/internal/metrics"
)

// ActiveTracker remembers the users seen recently by the API. Entries expire
// after the configured TTL and the least recently seen user is evicted when the
// tracker is full.
type ActiveTracker struct {
	lru *expirable.LRU[string, time.Time]
	now func() time.Time
}

// NewActiveTracker creates a tracker holding at most size users for ttl each.
// Non-positive arguments fall back to DefaultTrackerSize and DefaultTrackerTTL.
func NewActiveTracker(size int, ttl time.Duration) *ActiveTracker {
	if size <= 0 {
		size = DefaultTrackerSize
	}
	if ttl <= 0 {
		ttl = DefaultTrackerTTL
	}
	return &ActiveTracker{
		lru: expirable.NewLRU[string, time.Time](size, nil, ttl),
		now: time.Now,
	}
}

// Track records that userID was just seen
func (t *ActiveTracker) Track(userID string) {
	if userID == "" {
		return
	}
	t.lru.Add(userID, t.now())
	metrics.ActiveUsers.Set(float64(t.lru.Len()))
}

// LastSeen returns when userID was last tracked
func (t *ActiveTracker) LastSeen(userID string) (time.Time, bool) {
	return t.lru.Peek(userID)
}

// Active returns the unexpired user ids in ascending order
func (t *ActiveTracker) Active() []string {
	ids := t.lru.Keys()
	sort.Strings(ids)
	metrics.ActiveUsers.Set(float64(len(ids)))
	return ids
}

// Len returns the number of tracked users
func (t *ActiveTracker) Len() int {
	return t.lru.Len()
}

// Forget removes userID
func (t *ActiveTracker) Forget(userID string) {
	t.lru.Remove(userID)
}

// Clear removes every entry
func (t *ActiveTracker) Clear() {
	t.lru.Purge()
	metrics.ActiveUsers.Set(0)
}
