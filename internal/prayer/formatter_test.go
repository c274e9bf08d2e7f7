package prayer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minbar-signage/minbar/internal/clock"
	"github.com/minbar-signage/minbar/internal/model"
)

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

func snapAt(hour, minute, second int) clock.Snapshot {
	return clock.SnapshotAt(time.Date(2026, time.March, 4, hour, minute, second, 0, time.UTC))
}

func TestFormatNilTable(t *testing.T) {
	f := NewFormatter(false)
	sched := f.Format(nil, snapAt(10, 0, 0))
	assert.Empty(t, sched.Prayers)
	assert.Nil(t, sched.Next)
	assert.Nil(t, sched.Current)
}

func TestNextStaysBetweenAdhanAndJamaat(t *testing.T) {
	// Asr adhan has passed but its congregation has not, so Asr is
	// still the next prayer and the countdown runs to the jamaat.
	f := NewFormatter(false)
	sched := f.Format(sampleTimes(), snapAt(15, 56, 0))

	require.NotNil(t, sched.Next)
	assert.Equal(t, model.PrayerAsr, sched.Next.Name)
	assert.True(t, sched.Next.IsNext)
	assert.Equal(t, "4m", sched.Next.Countdown)

	require.NotNil(t, sched.Current)
	assert.Equal(t, model.PrayerZuhr, sched.Current.Name)
	assert.True(t, sched.Current.IsCurrent)
}

func TestCurrentFlipsOnceJamaatPasses(t *testing.T) {
	f := NewFormatter(false)
	sched := f.Format(sampleTimes(), snapAt(16, 0, 0))

	require.NotNil(t, sched.Current)
	assert.Equal(t, model.PrayerAsr, sched.Current.Name)
	require.NotNil(t, sched.Next)
	assert.Equal(t, model.PrayerMaghrib, sched.Next.Name)
}

func TestCountdownBeforeAdhan(t *testing.T) {
	f := NewFormatter(false)
	sched := f.Format(sampleTimes(), snapAt(14, 0, 0))

	require.NotNil(t, sched.Next)
	assert.Equal(t, model.PrayerAsr, sched.Next.Name)
	assert.Equal(t, "1h 30m", sched.Next.Countdown)
}

func TestSunriseNeverNextOrCurrent(t *testing.T) {
	f := NewFormatter(false)
	sched := f.Format(sampleTimes(), snapAt(6, 30, 0))

	require.NotNil(t, sched.Next)
	assert.Equal(t, model.PrayerZuhr, sched.Next.Name)
	require.NotNil(t, sched.Current)
	assert.Equal(t, model.PrayerFajr, sched.Current.Name)

	// Sunrise still renders in the list.
	names := make([]string, 0, len(sched.Prayers))
	for _, p := range sched.Prayers {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, model.PrayerSunrise)
}

func TestWrapsToTomorrowsFajr(t *testing.T) {
	f := NewFormatter(false)
	sched := f.Format(sampleTimes(), snapAt(23, 0, 0))

	require.NotNil(t, sched.Next)
	assert.Equal(t, model.PrayerFajr, sched.Next.Name)
	assert.True(t, sched.Next.Tomorrow)
	assert.Equal(t, "6h 30m", sched.Next.Countdown)

	require.NotNil(t, sched.Current)
	assert.Equal(t, model.PrayerIsha, sched.Current.Name)
}

func TestMissingAndUnparsableEntriesDropped(t *testing.T) {
	times := sampleTimes()
	times.Zuhr.Adhan = ""
	times.Asr.Adhan = "25:00"

	f := NewFormatter(false)
	sched := f.Format(times, snapAt(10, 0, 0))

	for _, p := range sched.Prayers {
		assert.NotEqual(t, model.PrayerZuhr, p.Name)
		assert.NotEqual(t, model.PrayerAsr, p.Name)
	}
	require.NotNil(t, sched.Next)
	assert.Equal(t, model.PrayerMaghrib, sched.Next.Name)
}

func TestUnparsableJamaatKeepsAdhan(t *testing.T) {
	times := sampleTimes()
	times.Maghrib.Jamaat = "bogus"

	f := NewFormatter(false)
	sched := f.Format(times, snapAt(18, 5, 0))

	require.NotNil(t, sched.Next)
	assert.Equal(t, model.PrayerMaghrib, sched.Next.Name)
	assert.Equal(t, -1, sched.Next.JamaatMinutes)
	assert.Empty(t, sched.Next.Jamaat)
}

func TestTwelveHourDisplay(t *testing.T) {
	f := NewFormatter(true)
	sched := f.Format(sampleTimes(), snapAt(10, 0, 0))

	for _, p := range sched.Prayers {
		if p.Name == model.PrayerAsr {
			assert.Equal(t, "3:30 PM", p.Display)
			assert.Equal(t, "4:00 PM", p.DisplayJamaat)
		}
	}
}

func TestFormatIsStableWithinAMinute(t *testing.T) {
	f := NewFormatter(false)
	a := f.Format(sampleTimes(), snapAt(15, 56, 10))
	b := f.Format(sampleTimes(), snapAt(15, 56, 40))
	assert.Equal(t, a, b)
}
