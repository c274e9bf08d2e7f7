package forbidden

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
		Fajr:    model.PrayerTime{Adhan: "05:30"},
		Sunrise: model.PrayerTime{Adhan: "06:45"},
		Zuhr:    model.PrayerTime{Adhan: "12:30"},
		Asr:     model.PrayerTime{Adhan: "15:30"},
		Maghrib: model.PrayerTime{Adhan: "18:10"},
	}
}

func statusAt(hour, minute int) Status {
	snap := clock.SnapshotAt(time.Date(2026, time.March, 4, hour, minute, 0, 0, time.UTC))
	return Current(sampleTimes(), snap)
}

func TestWindowsDerivation(t *testing.T) {
	windows := Windows(sampleTimes())
	require.Len(t, windows, 3)

	assert.Equal(t, "After dawn until sun up", windows[0].Label)
	assert.Equal(t, "05:30", windows[0].Start)
	assert.Equal(t, "07:00", windows[0].End)

	assert.Equal(t, "At the sun's zenith", windows[1].Label)
	assert.Equal(t, "12:25", windows[1].Start)
	assert.Equal(t, "12:30", windows[1].End)

	assert.Equal(t, "After Asr until sunset", windows[2].Label)
	assert.Equal(t, "15:30", windows[2].Start)
	assert.Equal(t, "18:10", windows[2].End)
}

func TestDawnWindow(t *testing.T) {
	status := statusAt(6, 0)
	assert.True(t, status.IsForbidden)
	assert.Equal(t, "After dawn until sun up", status.Reason)
	assert.Equal(t, "07:00", status.EndsAt)
}

func TestMidMorningIsClear(t *testing.T) {
	assert.Equal(t, Status{}, statusAt(10, 0))
}

func TestHalfOpenBoundaries(t *testing.T) {
	// Start inclusive, end exclusive.
	assert.True(t, statusAt(5, 30).IsForbidden)
	assert.True(t, statusAt(6, 59).IsForbidden)
	assert.False(t, statusAt(7, 0).IsForbidden)

	assert.False(t, statusAt(12, 24).IsForbidden)
	assert.True(t, statusAt(12, 25).IsForbidden)
	assert.False(t, statusAt(12, 30).IsForbidden)

	assert.True(t, statusAt(15, 30).IsForbidden)
	assert.False(t, statusAt(18, 10).IsForbidden)
}

func TestMissingSourcesOmitWindows(t *testing.T) {
	times := sampleTimes()
	times.Sunrise.Adhan = ""
	times.Asr.Adhan = ""

	windows := Windows(times)
	require.Len(t, windows, 1)
	assert.Equal(t, "At the sun's zenith", windows[0].Label)
}

func TestUnparsableSourcesOmitWindows(t *testing.T) {
	times := sampleTimes()
	times.Zuhr.Adhan = "nonsense"

	windows := Windows(times)
	require.Len(t, windows, 2)
	for _, w := range windows {
		assert.NotEqual(t, "At the sun's zenith", w.Label)
	}
}

func TestNilTable(t *testing.T) {
	assert.Nil(t, Windows(nil))
	snap := clock.SnapshotAt(time.Date(2026, time.March, 4, 6, 0, 0, 0, time.UTC))
	assert.Equal(t, Status{}, Current(nil, snap))
}

func TestZenithWindowWrapsNearMidnight(t *testing.T) {
	times := &model.DailyTimes{
		Date: "2026-03-04",
		Zuhr: model.PrayerTime{Adhan: "00:02"},
	}
	windows := Windows(times)
	require.Len(t, windows, 1)
	assert.Equal(t, "23:57", windows[0].Start)
	assert.Equal(t, "00:02", windows[0].End)

	late := clock.SnapshotAt(time.Date(2026, time.March, 4, 23, 58, 0, 0, time.UTC))
	assert.True(t, Current(times, late).IsForbidden)
	early := clock.SnapshotAt(time.Date(2026, time.March, 4, 0, 1, 0, 0, time.UTC))
	assert.True(t, Current(times, early).IsForbidden)
}
