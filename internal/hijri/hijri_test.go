package hijri

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestFromTimeKnownDates(t *testing.T) {
	cases := []struct {
		greg time.Time
		want Date
	}{
		{day(2000, time.April, 6), Date{Day: 1, Month: 1, Year: 1421}},
		{day(2026, time.February, 18), Date{Day: 1, Month: 9, Year: 1447}},
		{day(2026, time.March, 4), Date{Day: 15, Month: 9, Year: 1447}},
		{day(2025, time.August, 30), Date{Day: 6, Month: 3, Year: 1447}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FromTime(tc.greg), tc.greg.Format("2006-01-02"))
	}
}

func TestRamadanMonthDetection(t *testing.T) {
	assert.Equal(t, MonthRamadan, FromTime(day(2026, time.March, 4)).Month)
	assert.NotEqual(t, MonthRamadan, FromTime(day(2025, time.August, 30)).Month)
}

func TestStringForm(t *testing.T) {
	assert.Equal(t, "15 Ramadan 1447 AH", Date{Day: 15, Month: 9, Year: 1447}.String())
	assert.Equal(t, "6 Rabi al-Awwal 1447 AH", Date{Day: 6, Month: 3, Year: 1447}.String())
}

func TestParseRoundTrip(t *testing.T) {
	for _, d := range []Date{
		{Day: 1, Month: 1, Year: 1421},
		{Day: 15, Month: 9, Year: 1447},
		{Day: 6, Month: 3, Year: 1447},
		{Day: 29, Month: 12, Year: 1450},
	} {
		parsed, err := Parse(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"15 Ramadan 1447",
		"0 Ramadan 1447 AH",
		"31 Ramadan 1447 AH",
		"15 Nonsense 1447 AH",
		"15 Ramadan x AH",
	} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Ramadan", Date{Month: 9}.MonthName())
	assert.Equal(t, "", Date{Month: 0}.MonthName())
	assert.Equal(t, "", Date{Month: 13}.MonthName())
}
