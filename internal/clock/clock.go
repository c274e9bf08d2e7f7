// Package clock provides the single shared ticking time source for the
// signage engine. Every consumer subscribes to one Service, so all
// state derived on a tick is computed against the same Snapshot and no
// display element drifts a second away from its siblings.
package clock

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// TimeSource supplies the current time. Production uses the system
// source; tests inject a ManualSource they advance on command.
type TimeSource interface {
	Now() time.Time
}

type systemSource struct{}

func (systemSource) Now() time.Time { return time.Now() }

// SystemSource returns the wall-clock time source.
func SystemSource() TimeSource { return systemSource{} }

// Service broadcasts one Snapshot per second to its subscribers. The
// internal ticker starts with the first subscriber and stops with the
// last, so an idle service does no background work.
type Service struct {
	source   TimeSource
	interval time.Duration

	mu     sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int
	last   Snapshot
	stop   chan struct{}
}

// NewService creates a stopped Service. A nil source means wall clock.
func NewService(source TimeSource) *Service {
	if source == nil {
		source = systemSource{}
	}
	return &Service{
		source:   source,
		interval: time.Second,
		subs:     make(map[int]func(Snapshot)),
	}
}

// Subscribe registers fn and invokes it immediately with the current
// time, so a new consumer renders without waiting up to a second for
// its first tick. The returned function unsubscribes; calling it more
// than once is harmless.
func (s *Service) Subscribe(fn func(Snapshot)) func() {
	snap := SnapshotAt(s.source.Now())

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.last = snap
	if s.stop == nil {
		s.stop = make(chan struct{})
		go s.run(s.stop)
	}
	s.mu.Unlock()

	invoke(fn, snap)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			if len(s.subs) == 0 && s.stop != nil {
				close(s.stop)
				s.stop = nil
			}
			s.mu.Unlock()
		})
	}
}

// Current returns the last broadcast Snapshot without recomputation.
func (s *Service) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Tick forces an immediate broadcast outside the regular cadence. The
// engine uses it after a timetable or override change so the display
// updates at once; tests use it together with a ManualSource.
func (s *Service) Tick() {
	s.broadcast(SnapshotAt(s.source.Now()))
}

func (s *Service) run(stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.broadcast(SnapshotAt(s.source.Now()))
		}
	}
}

func (s *Service) broadcast(snap Snapshot) {
	s.mu.Lock()
	s.last = snap
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		invoke(fn, snap)
	}
}

// invoke isolates subscriber failures: one panicking callback must not
// stop the others in the same tick, nor kill the ticker.
func invoke(fn func(Snapshot), snap Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("clock subscriber panicked")
		}
	}()
	fn(snap)
}
