package stats

import (
	"testing"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/study"
	"github.com/dayboard-app/dayboard-backend/pkg/tasks"
)

var testToday = time.Date(2022, 3, 9, 15, 4, 0, 0, time.Local) // a wednesday

func TestBucketsWeek(t *testing.T) {
	buckets := Buckets(RangeWeek, testToday)

	if len(buckets) != 7 {
		t.Fatalf("week series has %d buckets, want 7", len(buckets))
	}

	wantLabels := []string{"Thu", "Fri", "Sat", "Sun", "Mon", "Tue", "Wed"}
	for i, bucket := range buckets {
		if bucket.Label != wantLabels[i] {
			t.Errorf("bucket %d label = %q, want %q", i, bucket.Label, wantLabels[i])
		}
		if !bucket.ShowLabel {
			t.Errorf("bucket %d should show its label", i)
		}
	}

	if !buckets[6].Day.Equal(time.Date(2022, 3, 9, 0, 0, 0, 0, time.Local)) {
		t.Errorf("last week bucket = %v, want today at midnight", buckets[6].Day)
	}
}

func TestBucketsMonth(t *testing.T) {
	buckets := Buckets(RangeMonth, testToday)

	if len(buckets) != 31 {
		t.Fatalf("march series has %d buckets, want 31", len(buckets))
	}

	wantShown := map[int]bool{1: true, 5: true, 10: true, 15: true, 20: true, 25: true, 31: true}
	for i, bucket := range buckets {
		day := i + 1
		if bucket.ShowLabel != wantShown[day] {
			t.Errorf("day %d ShowLabel = %v, want %v", day, bucket.ShowLabel, wantShown[day])
		}
		if !bucket.ShowLabel && bucket.Label != "" {
			t.Errorf("day %d carries label %q without ShowLabel", day, bucket.Label)
		}
	}

	// February keeps its own last day labeled
	feb := Buckets(RangeMonth, time.Date(2022, 2, 10, 0, 0, 0, 0, time.Local))
	if len(feb) != 28 {
		t.Fatalf("february series has %d buckets, want 28", len(feb))
	}
	if !feb[27].ShowLabel || feb[27].Label != "28" {
		t.Errorf("last february bucket label = %q (shown %v)", feb[27].Label, feb[27].ShowLabel)
	}
}

func TestBucketsYearAndToday(t *testing.T) {
	year := Buckets(RangeYear, testToday)
	if len(year) != 12 {
		t.Fatalf("year series has %d buckets, want 12", len(year))
	}
	if year[0].Label != "Jan" || year[11].Label != "Dec" {
		t.Errorf("year labels = %q .. %q", year[0].Label, year[11].Label)
	}

	today := Buckets(RangeToday, testToday)
	if len(today) != 1 {
		t.Fatalf("today series has %d buckets, want 1", len(today))
	}
}

func TestTaskSeries(t *testing.T) {
	records := []tasks.Task{
		{Text: "a", Date: testToday, Completed: true},
		{Text: "b", Date: testToday.Add(-2 * time.Hour)},
		{Text: "c", Date: testToday.AddDate(0, 0, -1), Completed: true},
		{Text: "d", Date: testToday.AddDate(0, 0, -10)}, // outside the week window
		{Text: "e"}, // zero date, must never match
	}

	series := TaskSeries(records, RangeWeek, testToday)

	for i, bucket := range series {
		if bucket.Completed+bucket.Remaining != bucket.Total {
			t.Errorf("bucket %d: completed %d + remaining %d != total %d",
				i, bucket.Completed, bucket.Remaining, bucket.Total)
		}
	}

	last := series[6]
	if last.Total != 2 || last.Completed != 1 || last.Remaining != 1 {
		t.Errorf("today bucket = %+v, want total 2 completed 1 remaining 1", last)
	}

	if series[5].Total != 1 || series[5].Completed != 1 {
		t.Errorf("yesterday bucket = %+v, want one completed task", series[5])
	}

	var sum int
	for _, bucket := range series {
		sum += bucket.Total
	}
	if sum != 3 {
		t.Errorf("week series matched %d records, want 3", sum)
	}
}

func TestTaskSeriesEmpty(t *testing.T) {
	for _, rng := range []Range{RangeToday, RangeWeek, RangeMonth, RangeYear} {
		series := TaskSeries(nil, rng, testToday)
		for i, bucket := range series {
			if bucket.Total != 0 || bucket.Completed != 0 || bucket.Remaining != 0 {
				t.Errorf("%s bucket %d not zero: %+v", rng, i, bucket)
			}
		}
	}
}

func TestStudySeriesYear(t *testing.T) {
	sessions := []study.Session{
		{Hours: 2, Date: time.Date(2022, 3, 1, 9, 0, 0, 0, time.Local)},
		{Hours: 1.5, Date: time.Date(2022, 3, 28, 9, 0, 0, 0, time.Local)},
		{Hours: 4, Date: time.Date(2022, 7, 2, 9, 0, 0, 0, time.Local)},
		{Hours: 3, Date: time.Date(2021, 3, 2, 9, 0, 0, 0, time.Local)}, // previous year
	}

	series := StudySeries(sessions, RangeYear, testToday)

	if series[2].Hours != 3.5 {
		t.Errorf("march hours = %v, want 3.5", series[2].Hours)
	}
	if series[6].Hours != 4 {
		t.Errorf("july hours = %v, want 4", series[6].Hours)
	}
	if series[0].Hours != 0 {
		t.Errorf("january hours = %v, want 0", series[0].Hours)
	}
}

func TestStudySeriesWeek(t *testing.T) {
	sessions := []study.Session{
		{Hours: 1, Date: testToday},
		{Hours: 2, Date: testToday.Add(-3 * time.Hour)},
	}

	series := StudySeries(sessions, RangeWeek, testToday)
	if series[6].Hours != 3 {
		t.Errorf("today hours = %v, want 3", series[6].Hours)
	}
}
