package prayer

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheHitWithinTTL(t *testing.T) {
	c := newScheduleCache(2, 30*time.Second)
	now := time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)
	key := cacheKey{date: "2026-03-04", stamp: "s", minute: 720}

	c.put(key, Schedule{Prayers: []Formatted{{Name: "Zuhr"}}}, now)

	got, ok := c.get(key, now.Add(30*time.Second))
	assert.True(t, ok)
	assert.Equal(t, "Zuhr", got.Prayers[0].Name)
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	c := newScheduleCache(2, 30*time.Second)
	now := time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)
	key := cacheKey{date: "2026-03-04", stamp: "s", minute: 720}

	c.put(key, Schedule{}, now)

	_, ok := c.get(key, now.Add(31*time.Second))
	assert.False(t, ok)
	assert.Empty(t, c.order)
}

func TestCacheEvictsOldestFirst(t *testing.T) {
	c := newScheduleCache(3, time.Minute)
	now := time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		key := cacheKey{date: "2026-03-04", stamp: fmt.Sprintf("s%d", i), minute: 720 + i}
		c.put(key, Schedule{}, now)
	}

	_, ok := c.get(cacheKey{date: "2026-03-04", stamp: "s0", minute: 720}, now)
	assert.False(t, ok)
	for i := 1; i < 4; i++ {
		_, ok := c.get(cacheKey{date: "2026-03-04", stamp: fmt.Sprintf("s%d", i), minute: 720 + i}, now)
		assert.True(t, ok, "key %d", i)
	}
}

func TestCachePutSameKeyRefreshes(t *testing.T) {
	c := newScheduleCache(2, 30*time.Second)
	now := time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)
	key := cacheKey{date: "2026-03-04", stamp: "s", minute: 720}

	c.put(key, Schedule{}, now)
	c.put(key, Schedule{}, now.Add(20*time.Second))

	assert.Len(t, c.order, 1)
	_, ok := c.get(key, now.Add(45*time.Second))
	assert.True(t, ok)
}

func TestTableChangeMissesCache(t *testing.T) {
	c := newScheduleCache(2, 30*time.Second)
	now := time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)

	c.put(cacheKey{date: "2026-03-04", stamp: "old", minute: 720}, Schedule{}, now)

	_, ok := c.get(cacheKey{date: "2026-03-04", stamp: "new", minute: 720}, now)
	assert.False(t, ok)
}
