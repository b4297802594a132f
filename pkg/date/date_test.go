package date

import (
	"testing"
	"time"
)

func TestParseSafe(t *testing.T) {
	var parseTests = []struct {
		in interface{}
		ok bool
	}{
		{nil, false},
		{"", false},
		{"not-a-date", false},
		{"2022-13-45", false},
		{"2022-03-05", true},
		{"2022-03-05T09:30:00", true},
		{"2022-03-05T09:30:00Z", true},
		{"2022-03-05T09:30:00+01:00", true},
		{"2022-03-05 09:30:00", true},
		{time.Date(2022, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{time.Time{}, false},
		{(*time.Time)(nil), false},
		{int64(1646470800), true},
		{float64(1646470800000), true},
		{int64(-5), false},
		{map[string]string{}, false},
	}

	for _, tt := range parseTests {
		_, ok := ParseSafe(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseSafe(%v) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}

func TestFormatSafe(t *testing.T) {
	if got := FormatSafe("not-a-date", DayKeyLayout); got != "" {
		t.Errorf("FormatSafe on malformed input = %q, want empty string", got)
	}

	if got := FormatSafe("2022-03-05T09:30:00", DayKeyLayout); got != "2022-03-05" {
		t.Errorf("FormatSafe = %q, want 2022-03-05", got)
	}
}

func TestSameDaySafe(t *testing.T) {
	var sameDayTests = []struct {
		a   interface{}
		b   interface{}
		out bool
	}{
		{"2022-03-05T09:30:00", "2022-03-05T22:00:00", true},
		{"2022-03-05", "2022-03-06", false},
		{nil, "2022-03-05", false},
		{"2022-03-05", nil, false},
		{"not-a-date", "2022-03-05", false},
		{time.Date(2022, 3, 5, 23, 59, 0, 0, time.Local), "2022-03-05", true},
	}

	for _, tt := range sameDayTests {
		if got := SameDaySafe(tt.a, tt.b); got != tt.out {
			t.Errorf("SameDaySafe(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.out)
		}
	}
}

func TestSameDayAcrossZones(t *testing.T) {
	// The same instant expressed in different zones is the same local day,
	// whatever its wall clock date in the foreign zone says
	local := time.Date(2022, 3, 9, 22, 0, 0, 0, time.Local)
	foreign := local.In(time.FixedZone("UTC+6", 6*60*60))

	if !SameDay(local, foreign) {
		t.Errorf("SameDay(%v, %v) = false for the same instant", local, foreign)
	}

	if !SameDay(foreign, local) {
		t.Errorf("SameDay must be symmetric across zones")
	}

	nextDay := local.AddDate(0, 0, 1).In(time.UTC)
	if SameDay(local, nextDay) {
		t.Errorf("SameDay(%v, %v) = true for instants a day apart", local, nextDay)
	}
}

func TestMonthHelpers(t *testing.T) {
	ref := time.Date(2022, 2, 14, 13, 45, 0, 0, time.UTC)

	if got := StartOfMonth(ref); !got.Equal(time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartOfMonth = %v", got)
	}

	if got := DaysIn(ref); got != 28 {
		t.Errorf("DaysIn february 2022 = %d, want 28", got)
	}

	if got := DaysIn(time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)); got != 29 {
		t.Errorf("DaysIn february 2020 = %d, want 29", got)
	}

	end := EndOfMonth(ref)
	if end.Day() != 28 || end.Month() != time.February {
		t.Errorf("EndOfMonth = %v", end)
	}

	if got := DayKey(ref); got != "2022-02-14" {
		t.Errorf("DayKey = %q", got)
	}
}
