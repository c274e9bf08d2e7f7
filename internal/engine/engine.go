// Package engine ties the temporal components together. It subscribes
// once to the shared clock, evaluates the formatter, phase machine,
// Ramadan detector and forbidden-window calculator against the same
// snapshot every tick, and fans the combined display state out to
// in-process subscribers and paired screens.
package engine

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/minbar-signage/minbar/internal/clock"
	"github.com/minbar-signage/minbar/internal/forbidden"
	"github.com/minbar-signage/minbar/internal/model"
	"github.com/minbar-signage/minbar/internal/phase"
	"github.com/minbar-signage/minbar/internal/prayer"
	"github.com/minbar-signage/minbar/internal/ramadan"
)

// DisplayState is the full per-tick output consumed by the UI layer,
// the tv API and the MQTT push channel.
type DisplayState struct {
	Time      string             `json:"time"`
	Date      string             `json:"date"`
	Prayers   []prayer.Formatted `json:"prayers"`
	Next      *prayer.Formatted  `json:"next_prayer"`
	Current   *prayer.Formatted  `json:"current_prayer"`
	Phase     phase.State        `json:"phase"`
	Ramadan   ramadan.State      `json:"ramadan"`
	Forbidden forbidden.Status   `json:"forbidden"`
}

// Publisher pushes display state to paired screens. Implemented by the
// MQTT fan-out; a nil publisher is valid for tests.
type Publisher interface {
	PublishPhaseChange(state DisplayState) error
}

// Engine owns the only mutable shared state: the current raw table,
// the override flags and the last derived DisplayState. Everything
// else is recomputed per tick.
type Engine struct {
	clk       *clock.Service
	formatter *prayer.Formatter
	detector  *ramadan.Detector
	publisher Publisher

	mu            sync.RWMutex
	times         *model.DailyTimes
	phaseOverride *phase.Phase
	last          DisplayState
	lastPhase     phase.Phase
	started       bool
	subs          map[int]func(DisplayState)
	nextSubID     int
	cancel        func()
}

func New(clk *clock.Service, formatter *prayer.Formatter, detector *ramadan.Detector, publisher Publisher) *Engine {
	return &Engine{
		clk:       clk,
		formatter: formatter,
		detector:  detector,
		publisher: publisher,
		subs:      make(map[int]func(DisplayState)),
	}
}

// Start subscribes the engine to the clock; the immediate first
// callback populates the initial state.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return
	}
	e.started = true
	e.mu.Unlock()

	e.cancel = e.clk.Subscribe(e.tick)
}

// Stop detaches the engine from the clock.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel := e.cancel
	e.cancel = nil
	e.started = false
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// SetTimes replaces today's table wholesale and recomputes at once so
// a refreshed table supersedes the old one without waiting a tick.
func (e *Engine) SetTimes(times *model.DailyTimes) {
	e.mu.Lock()
	e.times = times
	e.mu.Unlock()
	e.clk.Tick()
}

// SetPhaseOverride forces a display phase, or clears the force when
// nil. The computed and forced states are never blended.
func (e *Engine) SetPhaseOverride(p *phase.Phase) {
	e.mu.Lock()
	e.phaseOverride = p
	e.mu.Unlock()
	e.clk.Tick()
}

// SetRamadanForce applies the tri-state Ramadan override.
func (e *Engine) SetRamadanForce(mode ramadan.ForceMode) {
	e.detector.SetForce(mode)
	e.clk.Tick()
}

// HandleOverride applies an out-of-band override change notification.
func (e *Engine) HandleOverride(ev model.OverrideEvent) {
	switch ev.Kind {
	case model.OverrideKindPhase:
		if ev.Value == "" {
			e.SetPhaseOverride(nil)
			return
		}
		p := phase.Phase(ev.Value)
		if !phase.Valid(p) {
			log.Warn().Str("value", ev.Value).Msg("ignoring unknown phase override")
			return
		}
		e.SetPhaseOverride(&p)
	case model.OverrideKindRamadan:
		mode, ok := ramadan.ParseForceMode(ev.Value)
		if !ok {
			log.Warn().Str("value", ev.Value).Msg("ignoring unknown ramadan override")
			return
		}
		e.SetRamadanForce(mode)
	default:
		log.Warn().Str("kind", ev.Kind).Msg("ignoring unknown override kind")
	}
}

// PhaseOverride returns the current forced phase, nil when unset.
func (e *Engine) PhaseOverride() *phase.Phase {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.phaseOverride
}

// RamadanForce returns the detector's tri-state override.
func (e *Engine) RamadanForce() ramadan.ForceMode {
	return e.detector.Force()
}

// State returns the last derived DisplayState.
func (e *Engine) State() DisplayState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.last
}

// Subscribe registers fn for every subsequent state change and returns
// an unsubscribe function.
func (e *Engine) Subscribe(fn func(DisplayState)) func() {
	e.mu.Lock()
	id := e.nextSubID
	e.nextSubID++
	e.subs[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

func (e *Engine) tick(snap clock.Snapshot) {
	e.mu.RLock()
	times := e.times
	override := e.phaseOverride
	previousPhase := e.lastPhase
	e.mu.RUnlock()

	state := e.derive(times, override, snap)

	e.mu.Lock()
	e.last = state
	e.lastPhase = state.Phase.Phase
	fns := make([]func(DisplayState), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	if state.Phase.Phase != previousPhase {
		log.Info().
			Str("phase", string(state.Phase.Phase)).
			Str("prayer", state.Phase.Prayer).
			Msg("display phase changed")
		if e.publisher != nil {
			if err := e.publisher.PublishPhaseChange(state); err != nil {
				log.Error().Err(err).Msg("failed to push phase change to screens")
			}
		}
	}

	for _, fn := range fns {
		fn(state)
	}
}

// derive evaluates every component against the one snapshot. Each is
// isolated: a panic inside one degrades that component to its safe
// default and leaves the others, and the tick loop, running.
func (e *Engine) derive(times *model.DailyTimes, override *phase.Phase, snap clock.Snapshot) DisplayState {
	state := DisplayState{
		Time: snap.Time.Format(time.RFC3339),
		Date: snap.Date,
	}

	sched := prayer.Schedule{}
	safely("prayer formatter", func() {
		sched = e.formatter.Format(times, snap)
	})
	state.Prayers = sched.Prayers
	state.Next = sched.Next
	state.Current = sched.Current

	state.Phase = phase.State{Phase: phase.CountdownAdhan}
	safely("phase machine", func() {
		state.Phase = phase.Resolve(sched, snap, override)
	})

	safely("ramadan detector", func() {
		state.Ramadan = e.detector.Evaluate(times, snap)
	})

	safely("forbidden windows", func() {
		state.Forbidden = forbidden.Current(times, snap)
	})

	return state
}

func safely(component string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("component", component).
				Msg("derivation failed, using safe default")
		}
	}()
	fn()
}
