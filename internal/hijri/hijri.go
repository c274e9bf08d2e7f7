// Package hijri converts Gregorian dates to the tabular Islamic
// calendar. The arithmetic (Kuwaiti) method approximates the
// observational calendar to within a day or so, which is enough to
// detect the fasting month without an astronomical ephemeris.
package hijri

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthRamadan is the fasting month's number in the Hijri year.
const MonthRamadan = 9

var monthNames = [12]string{
	"Muharram", "Safar", "Rabi al-Awwal", "Rabi al-Thani",
	"Jumada al-Awwal", "Jumada al-Thani", "Rajab", "Shaban",
	"Ramadan", "Shawwal", "Dhul-Qadah", "Dhul-Hijjah",
}

// Date is a Hijri calendar date.
type Date struct {
	Day   int
	Month int // 1..12
	Year  int
}

// MonthName returns the transliterated month name, or "" for an
// out-of-range month.
func (d Date) MonthName() string {
	if d.Month < 1 || d.Month > 12 {
		return ""
	}
	return monthNames[d.Month-1]
}

// String renders the date in the display form "15 Ramadan 1447 AH".
func (d Date) String() string {
	return fmt.Sprintf("%d %s %d AH", d.Day, d.MonthName(), d.Year)
}

// FromTime converts a Gregorian instant to its Hijri date.
func FromTime(t time.Time) Date {
	jdn := gregorianJDN(t.Year(), int(t.Month()), t.Day())
	return fromJDN(jdn)
}

// Parse reads a "D Month YYYY AH" string back into a Date. Month names
// may contain spaces ("Rabi al-Awwal"), so the day is the first field,
// the year and "AH" the last two, and everything between is the month.
func Parse(s string) (Date, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) < 4 || fields[len(fields)-1] != "AH" {
		return Date{}, fmt.Errorf("malformed hijri date %q", s)
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil || day < 1 || day > 30 {
		return Date{}, fmt.Errorf("invalid hijri day in %q", s)
	}
	year, err := strconv.Atoi(fields[len(fields)-2])
	if err != nil || year < 1 {
		return Date{}, fmt.Errorf("invalid hijri year in %q", s)
	}

	name := strings.Join(fields[1:len(fields)-2], " ")
	month := 0
	for i, m := range monthNames {
		if strings.EqualFold(m, name) {
			month = i + 1
			break
		}
	}
	if month == 0 {
		return Date{}, fmt.Errorf("unknown hijri month %q", name)
	}

	return Date{Day: day, Month: month, Year: year}, nil
}

// gregorianJDN computes the Julian day number for a Gregorian date.
func gregorianJDN(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// fromJDN applies the tabular calendar arithmetic. Epoch 1948440 is
// 1 Muharram 1 AH; 10631 days make one 30-year cycle of 19 common and
// 11 leap lunar years.
func fromJDN(jdn int) Date {
	l := jdn - 1948440 + 10632
	n := (l - 1) / 10631
	l = l - 10631*n + 354
	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29
	month := (24 * l) / 709
	day := l - (709*month)/24
	year := 30*n + j - 30
	return Date{Day: day, Month: month, Year: year}
}
