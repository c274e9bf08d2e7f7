package clock

import (
	"sync"
	"time"
)

// ManualSource is a TimeSource that tests drive by hand.
type ManualSource struct {
	mu sync.Mutex
	t  time.Time
}

// NewManualSource creates a source frozen at t.
func NewManualSource(t time.Time) *ManualSource {
	return &ManualSource{t: t}
}

func (m *ManualSource) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.t
}

// Set moves the source to an absolute instant.
func (m *ManualSource) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.t = t
}

// Advance moves the source forward by d.
func (m *ManualSource) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.t = m.t.Add(d)
}
