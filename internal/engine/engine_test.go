package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minbar-signage/minbar/internal/clock"
	"github.com/minbar-signage/minbar/internal/model"
	"github.com/minbar-signage/minbar/internal/phase"
	"github.com/minbar-signage/minbar/internal/prayer"
	"github.com/minbar-signage/minbar/internal/ramadan"
)

type recordingPublisher struct {
	mu     sync.Mutex
	states []DisplayState
}

func (p *recordingPublisher) PublishPhaseChange(state DisplayState) error {
	p.mu.Lock()
	p.states = append(p.states, state)
	p.mu.Unlock()
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.states)
}

func sampleTimes() *model.DailyTimes {
	return &model.DailyTimes{
		Date:    "2026-03-04",
		Fajr:    model.PrayerTime{Adhan: "05:30", Jamaat: "05:50"},
		Sunrise: model.PrayerTime{Adhan: "06:45"},
		Zuhr:    model.PrayerTime{Adhan: "12:30", Jamaat: "12:45"},
		Asr:     model.PrayerTime{Adhan: "15:30", Jamaat: "16:00"},
		Maghrib: model.PrayerTime{Adhan: "18:10", Jamaat: "18:15"},
		Isha:    model.PrayerTime{Adhan: "19:45", Jamaat: "20:00"},
	}
}

// 2026-03-04 falls in Ramadan, which the end-to-end assertions rely on.
func newTestEngine(at time.Time) (*Engine, *clock.ManualSource, *recordingPublisher) {
	src := clock.NewManualSource(at)
	clk := clock.NewService(src)
	pub := &recordingPublisher{}
	eng := New(clk, prayer.NewFormatter(false), ramadan.NewDetector(), pub)
	return eng, src, pub
}

func TestEndToEndDerivation(t *testing.T) {
	at := time.Date(2026, time.March, 4, 15, 56, 0, 0, time.UTC)
	eng, _, _ := newTestEngine(at)
	eng.SetTimes(sampleTimes())
	eng.Start()
	defer eng.Stop()

	state := eng.State()
	assert.Equal(t, at.Format(time.RFC3339), state.Time)
	assert.Equal(t, "2026-03-04", state.Date)

	require.NotNil(t, state.Next)
	assert.Equal(t, model.PrayerAsr, state.Next.Name)
	assert.Equal(t, "4m", state.Next.Countdown)
	require.NotNil(t, state.Current)
	assert.Equal(t, model.PrayerZuhr, state.Current.Name)

	assert.Equal(t, phase.JamaatSoon, state.Phase.Phase)
	assert.Equal(t, model.PrayerAsr, state.Phase.Prayer)
	assert.Equal(t, "4m 0s", state.Phase.Countdown)

	assert.True(t, state.Ramadan.IsRamadan)
	assert.Equal(t, 15, state.Ramadan.Day)
	assert.True(t, state.Ramadan.IsFastingHours)

	assert.True(t, state.Forbidden.IsForbidden)
	assert.Equal(t, "After Asr until sunset", state.Forbidden.Reason)
	assert.Equal(t, "18:10", state.Forbidden.EndsAt)
}

func TestNoTableStillTicks(t *testing.T) {
	at := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	eng, _, _ := newTestEngine(at)
	eng.Start()
	defer eng.Stop()

	state := eng.State()
	assert.Empty(t, state.Prayers)
	assert.Nil(t, state.Next)
	assert.Equal(t, phase.CountdownAdhan, state.Phase.Phase)
}

func TestSetTimesRecomputesImmediately(t *testing.T) {
	at := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	eng, _, _ := newTestEngine(at)
	eng.Start()
	defer eng.Stop()

	require.Nil(t, eng.State().Next)

	eng.SetTimes(sampleTimes())
	require.NotNil(t, eng.State().Next)
	assert.Equal(t, model.PrayerZuhr, eng.State().Next.Name)
}

func TestHandleOverridePhase(t *testing.T) {
	at := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	eng, _, _ := newTestEngine(at)
	eng.SetTimes(sampleTimes())
	eng.Start()
	defer eng.Stop()

	eng.HandleOverride(model.OverrideEvent{Kind: model.OverrideKindPhase, Value: "in-prayer"})
	assert.Equal(t, phase.InPrayer, eng.State().Phase.Phase)
	require.NotNil(t, eng.PhaseOverride())

	// Clearing the override returns to the computed phase.
	eng.HandleOverride(model.OverrideEvent{Kind: model.OverrideKindPhase, Value: ""})
	assert.Equal(t, phase.CountdownAdhan, eng.State().Phase.Phase)
	assert.Nil(t, eng.PhaseOverride())
}

func TestHandleOverrideIgnoresUnknownValues(t *testing.T) {
	at := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	eng, _, _ := newTestEngine(at)
	eng.SetTimes(sampleTimes())
	eng.Start()
	defer eng.Stop()

	before := eng.State().Phase.Phase
	eng.HandleOverride(model.OverrideEvent{Kind: model.OverrideKindPhase, Value: "sideways"})
	eng.HandleOverride(model.OverrideEvent{Kind: "volume", Value: "11"})
	assert.Equal(t, before, eng.State().Phase.Phase)
	assert.Nil(t, eng.PhaseOverride())
}

func TestHandleOverrideRamadan(t *testing.T) {
	at := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	eng, _, _ := newTestEngine(at)
	eng.SetTimes(sampleTimes())
	eng.Start()
	defer eng.Stop()

	require.True(t, eng.State().Ramadan.IsRamadan)

	eng.HandleOverride(model.OverrideEvent{Kind: model.OverrideKindRamadan, Value: "off"})
	assert.False(t, eng.State().Ramadan.IsRamadan)
	assert.Equal(t, ramadan.ForceOff, eng.RamadanForce())

	eng.HandleOverride(model.OverrideEvent{Kind: model.OverrideKindRamadan, Value: "auto"})
	assert.True(t, eng.State().Ramadan.IsRamadan)
}

func TestPhaseChangePublished(t *testing.T) {
	at := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	eng, _, pub := newTestEngine(at)
	eng.SetTimes(sampleTimes())
	eng.Start()
	defer eng.Stop()

	initial := pub.count()

	forced := phase.InPrayer
	eng.SetPhaseOverride(&forced)
	assert.Equal(t, initial+1, pub.count())

	// Same phase again does not republish.
	eng.SetPhaseOverride(&forced)
	assert.Equal(t, initial+1, pub.count())
}

func TestSubscribeDeliversStates(t *testing.T) {
	at := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	eng, _, _ := newTestEngine(at)
	eng.Start()
	defer eng.Stop()

	var mu sync.Mutex
	var got []DisplayState
	cancel := eng.Subscribe(func(s DisplayState) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	})

	eng.SetTimes(sampleTimes())
	mu.Lock()
	n := len(got)
	mu.Unlock()
	assert.GreaterOrEqual(t, n, 1)

	cancel()
	eng.SetTimes(sampleTimes())
	mu.Lock()
	assert.Equal(t, n, len(got))
	mu.Unlock()
}

func TestTimeAdvancesPhaseTransitions(t *testing.T) {
	at := time.Date(2026, time.March, 4, 15, 54, 59, 0, time.UTC)
	eng, src, _ := newTestEngine(at)
	eng.SetTimes(sampleTimes())
	eng.Start()
	defer eng.Stop()

	assert.Equal(t, phase.CountdownJamaat, eng.State().Phase.Phase)

	src.Advance(time.Second)
	eng.SetTimes(sampleTimes()) // forces a tick at the new instant
	assert.Equal(t, phase.JamaatSoon, eng.State().Phase.Phase)
}
