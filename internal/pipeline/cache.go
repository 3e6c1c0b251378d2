package pipeline

import (
	"sync"
	"time"
)

// snapshotCache memoizes the single most recent snapshot under its source
// fingerprint. One mutex covers lookup and rebuild, so concurrent requests
// trigger at most one recomputation per key change.
type snapshotCache struct {
	ttl time.Duration

	mu       sync.Mutex
	key      string
	snapshot *Snapshot
	storedAt time.Time
}

func newSnapshotCache(ttl time.Duration) *snapshotCache {
	return &snapshotCache{ttl: ttl}
}

// getOrBuild returns a private copy of the snapshot for key, building it
// first if the key changed, the TTL lapsed, or the cache was invalidated.
func (c *snapshotCache) getOrBuild(key string, build func() *Snapshot) (snap *Snapshot, hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && c.key == key && !c.expired() {
		return c.snapshot.clone(), true
	}

	s := build()
	c.key = key
	c.snapshot = s
	c.storedAt = time.Now()
	return s.clone(), false
}

func (c *snapshotCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
	c.key = ""
}

func (c *snapshotCache) expired() bool {
	return c.ttl > 0 && time.Since(c.storedAt) > c.ttl
}
