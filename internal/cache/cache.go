package cache

import (
	"slices"
	"sync"

	"github.com/jw6ventures/stravaview/internal/activity"
	"github.com/jw6ventures/stravaview/internal/metrics"
)

// FindResult tells why Find did or did not return an activity.
type FindResult int

const (
	Found FindResult = iota
	// NoEntry means nothing has been cached for the athlete yet.
	NoEntry
	// NoActivity means the athlete's list does not contain the id.
	NoActivity
)

// ActivityCache holds the last fetched activity list per athlete for the life of the process.
// Entries are replaced whole and never evicted.
type ActivityCache struct {
	mu      sync.RWMutex
	entries map[int64][]activity.View
}

func New() *ActivityCache {
	return &ActivityCache{entries: make(map[int64][]activity.View)}
}

// Put replaces the athlete's list with a copy of views.
func (c *ActivityCache) Put(athleteID int64, views []activity.View) {
	stored := slices.Clone(views)
	if stored == nil {
		stored = []activity.View{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[athleteID] = stored
	// Set under the lock so racing puts cannot leave an older count behind.
	metrics.SetCachedAthletes(len(c.entries))
}

// Get returns a copy of the athlete's list.
func (c *ActivityCache) Get(athleteID int64) ([]activity.View, bool) {
	c.mu.RLock()
	views, ok := c.entries[athleteID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return slices.Clone(views), true
}

// Find returns the first cached activity with the given id.
func (c *ActivityCache) Find(athleteID, activityID int64) (activity.View, FindResult) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	views, ok := c.entries[athleteID]
	if !ok {
		return activity.View{}, NoEntry
	}
	for _, v := range views {
		if v.ID == activityID {
			return v, Found
		}
	}
	return activity.View{}, NoActivity
}

func (c *ActivityCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
