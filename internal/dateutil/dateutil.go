// Package dateutil centralizes every date operation in the application.
// All dates are normalized to midnight in KST (Asia/Seoul) regardless of
// the host timezone. User input, NEIS parameters, and display text each go
// through exactly one function here; no other package constructs dates
// from external values directly.
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// Seoul timezone for consistent date handling and display
var seoulTZ *time.Location

func init() {
	var err error
	seoulTZ, err = time.LoadLocation("Asia/Seoul")
	if err != nil {
		// Fallback to UTC+9 if timezone data is not available
		seoulTZ = time.FixedZone("Asia/Seoul", 9*60*60)
	}
}

// Location returns the KST (Asia/Seoul) timezone location.
func Location() *time.Location {
	return seoulTZ
}

// weekdays holds Korean single-character weekday names indexed by time.Weekday.
var weekdays = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// Midnight normalizes t to midnight KST on the same calendar day.
func Midnight(t time.Time) time.Time {
	t = t.In(seoulTZ)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, seoulTZ)
}

// Today returns the current date at midnight KST.
func Today() time.Time {
	return Midnight(time.Now())
}

// DateByOffset returns today plus n calendar days, at midnight KST.
func DateByOffset(n int) time.Time {
	return Today().AddDate(0, 0, n)
}

// AddDays returns t plus n calendar days, at midnight KST.
func AddDays(t time.Time, n int) time.Time {
	return Midnight(t.AddDate(0, 0, n))
}

// parseLayouts are tried in fixed priority order by ParseFlexible.
// Spaced variants cover dot formats as Koreans commonly type them
// ("2025. 6. 10.").
var parseLayouts = []string{
	"20060102",
	"2006-01-02",
	"2006.01.02",
	"2006. 1. 2.",
	"2006. 1. 2",
	"2006/01/02",
	"2006년 1월 2일",
	time.RFC3339,
}

// ParseFlexible parses a date string in any of the known formats and
// returns it normalized to midnight KST. Returns ok=false when nothing
// matches; callers must treat that as "date unknown", not as an error.
func ParseFlexible(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, seoulTZ); err == nil {
			return Midnight(t), true
		}
	}
	return time.Time{}, false
}

// FormatLong formats a date as "2006년 1월 2일 (수)".
func FormatLong(t time.Time) string {
	t = t.In(seoulTZ)
	return fmt.Sprintf("%d년 %d월 %d일 (%s)", t.Year(), int(t.Month()), t.Day(), weekdays[t.Weekday()])
}

// FormatShort formats a date as "1월 2일 (수)".
func FormatShort(t time.Time) string {
	t = t.In(seoulTZ)
	return fmt.Sprintf("%d월 %d일 (%s)", int(t.Month()), t.Day(), weekdays[t.Weekday()])
}

// FormatISO formats a date as "2006-01-02".
func FormatISO(t time.Time) string {
	return t.In(seoulTZ).Format("2006-01-02")
}

// FormatAPIKey formats a date in the compact numeric form the NEIS API
// expects for its date filters ("20060102").
func FormatAPIKey(t time.Time) string {
	return t.In(seoulTZ).Format("20060102")
}

// FormatRange formats a date range for display. A single-day range
// collapses to FormatLong of that day.
func FormatRange(start, end time.Time) string {
	if SameDay(start, end) {
		return FormatLong(start)
	}
	return FormatLong(start) + " ~ " + FormatShort(end)
}

// SameDay reports whether two times fall on the same KST calendar day.
func SameDay(a, b time.Time) bool {
	a, b = a.In(seoulTZ), b.In(seoulTZ)
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// StartOfWeek returns the Monday of t's week at midnight KST. Weeks run
// Monday through Sunday, so a Sunday anchors to the Monday six days
// earlier rather than the next day.
func StartOfWeek(t time.Time) time.Time {
	t = Midnight(t)
	// Weekday() is Sunday=0; shift so Monday anchors the week.
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// StartOfMonth returns the first day of t's month at midnight KST.
func StartOfMonth(t time.Time) time.Time {
	t = t.In(seoulTZ)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, seoulTZ)
}

// EndOfMonth returns the last day of t's month at midnight KST.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// DaysBetween returns the number of calendar days from a to b
// (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	a, b = Midnight(a), Midnight(b)
	return int(b.Sub(a).Hours() / 24)
}

// AcademicYear returns the Korean academic year for a date: the calendar
// year, minus one for January and February (the school year starts in March).
func AcademicYear(t time.Time) int {
	t = t.In(seoulTZ)
	if t.Month() < time.March {
		return t.Year() - 1
	}
	return t.Year()
}

// Semester returns the semester for a date: 1 for March through August, 2 otherwise.
func Semester(t time.Time) int {
	m := t.In(seoulTZ).Month()
	if m >= time.March && m <= time.August {
		return 1
	}
	return 2
}
