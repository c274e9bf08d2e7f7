package prayer

import (
	"sync"
	"time"
)

const (
	cacheSize = 10
	cacheTTL  = 30 * time.Second
)

type cacheKey struct {
	date   string
	stamp  string
	minute int
}

type cacheEntry struct {
	sched    Schedule
	storedAt time.Time
}

// scheduleCache is a small FIFO memo for formatted schedules: bounded
// to the most recent keys, entries expire after a short TTL, oldest
// key evicted first. It only ever short-circuits recomputation.
type scheduleCache struct {
	mu      sync.Mutex
	max     int
	ttl     time.Duration
	order   []cacheKey
	entries map[cacheKey]cacheEntry
}

func newScheduleCache(max int, ttl time.Duration) *scheduleCache {
	return &scheduleCache{
		max:     max,
		ttl:     ttl,
		entries: make(map[cacheKey]cacheEntry, max),
	}
}

func (c *scheduleCache) get(key cacheKey, now time.Time) (Schedule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return Schedule{}, false
	}
	if now.Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		c.dropKey(key)
		return Schedule{}, false
	}
	return entry.sched, true
}

func (c *scheduleCache) put(key cacheKey, sched Schedule, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.max {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = cacheEntry{sched: sched, storedAt: now}
}

func (c *scheduleCache) dropKey(key cacheKey) {
	for i := range c.order {
		if c.order[i] == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
