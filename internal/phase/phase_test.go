package phase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/minbar-signage/minbar/internal/clock"
	"github.com/minbar-signage/minbar/internal/model"
	"github.com/minbar-signage/minbar/internal/prayer"
)

func sampleTimes() *model.DailyTimes {
	return &model.DailyTimes{
		Date:    "2026-03-04",
		Fajr:    model.PrayerTime{Adhan: "05:30", Jamaat: "05:50"},
		Sunrise: model.PrayerTime{Adhan: "06:45"},
		Zuhr:    model.PrayerTime{Adhan: "12:00", Jamaat: "12:30"},
		Asr:     model.PrayerTime{Adhan: "15:30", Jamaat: "16:00"},
		Maghrib: model.PrayerTime{Adhan: "18:10", Jamaat: "18:15"},
		Isha:    model.PrayerTime{Adhan: "19:45", Jamaat: "20:00"},
	}
}

func resolveAt(t *testing.T, times *model.DailyTimes, hour, minute, second int, override *Phase) State {
	t.Helper()
	snap := clock.SnapshotAt(time.Date(2026, time.March, 4, hour, minute, second, 0, time.UTC))
	sched := prayer.NewFormatter(false).Format(times, snap)
	return Resolve(sched, snap, override)
}

func TestValid(t *testing.T) {
	for _, p := range []Phase{CountdownAdhan, CountdownJamaat, JamaatSoon, InPrayer} {
		assert.True(t, Valid(p))
	}
	assert.False(t, Valid(Phase("between-prayers")))
	assert.False(t, Valid(Phase("")))
}

func TestCountdownAdhanBeforePrayer(t *testing.T) {
	state := resolveAt(t, sampleTimes(), 14, 0, 0, nil)
	assert.Equal(t, CountdownAdhan, state.Phase)
	assert.Equal(t, model.PrayerAsr, state.Prayer)
	assert.Equal(t, "1h 30m", state.Countdown)
}

func TestCountdownJamaatAfterAdhan(t *testing.T) {
	state := resolveAt(t, sampleTimes(), 12, 10, 0, nil)
	assert.Equal(t, CountdownJamaat, state.Phase)
	assert.Equal(t, model.PrayerZuhr, state.Prayer)
	assert.Equal(t, "20m 0s", state.Countdown)
}

func TestJamaatSoonBoundaryIsExact(t *testing.T) {
	// 301 seconds out is still the ordinary congregation countdown;
	// one second later the final warning takes over.
	before := resolveAt(t, sampleTimes(), 12, 24, 59, nil)
	assert.Equal(t, CountdownJamaat, before.Phase)
	assert.Equal(t, "5m 1s", before.Countdown)

	at := resolveAt(t, sampleTimes(), 12, 25, 0, nil)
	assert.Equal(t, JamaatSoon, at.Phase)
	assert.Equal(t, "5m 0s", at.Countdown)
}

func TestJamaatSoonNearCongregation(t *testing.T) {
	state := resolveAt(t, sampleTimes(), 15, 56, 0, nil)
	assert.Equal(t, JamaatSoon, state.Phase)
	assert.Equal(t, model.PrayerAsr, state.Prayer)
	assert.Equal(t, "4m 0s", state.Countdown)
}

func TestInPrayerWindow(t *testing.T) {
	start := resolveAt(t, sampleTimes(), 12, 30, 0, nil)
	assert.Equal(t, InPrayer, start.Phase)
	assert.Equal(t, model.PrayerZuhr, start.Prayer)
	assert.Empty(t, start.Countdown)

	lastSecond := resolveAt(t, sampleTimes(), 12, 34, 59, nil)
	assert.Equal(t, InPrayer, lastSecond.Phase)

	after := resolveAt(t, sampleTimes(), 12, 35, 0, nil)
	assert.Equal(t, CountdownAdhan, after.Phase)
	assert.Equal(t, model.PrayerAsr, after.Prayer)
}

func TestNoJamaatSkipsCongregationPhases(t *testing.T) {
	times := sampleTimes()
	times.Fajr.Jamaat = ""
	times.Zuhr.Jamaat = ""
	times.Asr.Jamaat = ""
	times.Maghrib.Jamaat = ""
	times.Isha.Jamaat = ""

	// Right after the Asr adhan the display goes straight back to
	// counting down the next adhan.
	state := resolveAt(t, times, 15, 35, 0, nil)
	assert.Equal(t, CountdownAdhan, state.Phase)
	assert.Equal(t, model.PrayerMaghrib, state.Prayer)
}

func TestOverrideReturnedVerbatim(t *testing.T) {
	forced := InPrayer
	state := resolveAt(t, sampleTimes(), 10, 0, 0, &forced)
	assert.Equal(t, InPrayer, state.Phase)
	assert.Equal(t, model.PrayerFajr, state.Prayer)
	assert.Empty(t, state.Countdown)
}

func TestEmptyScheduleDefaults(t *testing.T) {
	snap := clock.SnapshotAt(time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC))
	state := Resolve(prayer.Schedule{}, snap, nil)
	assert.Equal(t, CountdownAdhan, state.Phase)
	assert.Empty(t, state.Prayer)
}

func TestWrapToTomorrowCountsToAdhan(t *testing.T) {
	state := resolveAt(t, sampleTimes(), 23, 0, 0, nil)
	assert.Equal(t, CountdownAdhan, state.Phase)
	assert.Equal(t, model.PrayerFajr, state.Prayer)
	assert.Equal(t, "6h 30m", state.Countdown)
}
