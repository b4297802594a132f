package date

import (
	"time"
)

// DayKeyLayout is the canonical layout for a calendar day key
const DayKeyLayout = "2006-01-02"

// layouts are tried in order by ParseSafe. Records written by older clients
// carry combined date+time strings without a zone.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	DayKeyLayout,
}

// ParseSafe attempts to interpret an arbitrary value as a calendar date.
// It returns false instead of panicking for anything that does not resolve
// to a valid date, so downstream comparisons degrade to "not matching".
func ParseSafe(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case string:
		if v == "" {
			return time.Time{}, false
		}
		for _, layout := range layouts {
			t, err := time.ParseInLocation(layout, v, time.Local)
			if err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case int64:
		return fromUnix(v)
	case int:
		return fromUnix(int64(v))
	case float64:
		return fromUnix(int64(v))
	default:
		return time.Time{}, false
	}
}

func fromUnix(v int64) (time.Time, bool) {
	if v <= 0 {
		return time.Time{}, false
	}

	// Values past the year 9999 in seconds are taken as milliseconds
	if v > 253402300799 {
		return time.Unix(v/1000, (v%1000)*int64(time.Millisecond)), true
	}

	return time.Unix(v, 0), true
}

// FormatSafe formats a possibly malformed value, returning "" when it does not parse
func FormatSafe(value interface{}, layout string) string {
	t, ok := ParseSafe(value)
	if !ok {
		return ""
	}

	return t.Format(layout)
}

// SameDaySafe reports whether two possibly malformed values fall on the same
// calendar day in local time. Either side failing to parse yields false.
func SameDaySafe(a interface{}, b interface{}) bool {
	ta, ok := ParseSafe(a)
	if !ok {
		return false
	}

	tb, ok := ParseSafe(b)
	if !ok {
		return false
	}

	return SameDay(ta, tb)
}

// SameDay reports whether two valid times fall on the same calendar day in
// local time. Both instants are converted to the local zone first, so a
// Z-suffixed client timestamp compares correctly against a local midnight.
func SameDay(a time.Time, b time.Time) bool {
	ay, am, ad := a.In(time.Local).Date()
	by, bm, bd := b.In(time.Local).Date()
	return ay == by && am == bm && ad == bd
}

// DayKey returns the canonical "yyyy-MM-dd" key for a time
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// StartOfDay truncates a time to midnight in its location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns midnight on the first day of t's month
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last instant of t's month
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// DaysIn returns the number of days in t's month
func DaysIn(t time.Time) int {
	return StartOfMonth(t).AddDate(0, 1, -1).Day()
}
