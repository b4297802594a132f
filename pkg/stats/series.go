package stats

import (
	"strconv"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/date"
	"github.com/dayboard-app/dayboard-backend/pkg/study"
	"github.com/dayboard-app/dayboard-backend/pkg/tasks"
)

// Range selects the time window of an aggregated series
type Range string

const (
	// RangeToday is a single bucket for the reference day
	RangeToday Range = "today"
	// RangeWeek is the 7 days ending at the reference day
	RangeWeek Range = "week"
	// RangeMonth is every day of the reference day's calendar month
	RangeMonth Range = "month"
	// RangeYear is the 12 months of the reference day's calendar year
	RangeYear Range = "year"
)

// monthLabelDays are the 1-based day indices that get a visible label in a
// month series, plus the last day of the month
var monthLabelDays = map[int]bool{1: true, 5: true, 10: true, 15: true, 20: true, 25: true}

// Bucket is one time-window slot of an aggregated series
type Bucket struct {
	Label     string    `json:"label"`
	ShowLabel bool      `json:"showLabel"`
	Day       time.Time `json:"day"`

	// wholeMonth widens the membership test from a calendar day to a
	// calendar month, used by year series
	wholeMonth bool
}

// Contains reports whether a possibly malformed date value falls into the
// bucket. Values that do not parse never match.
func (b *Bucket) Contains(value interface{}) bool {
	if !b.wholeMonth {
		return date.SameDaySafe(value, b.Day)
	}

	t, ok := date.ParseSafe(value)
	if !ok {
		return false
	}

	t = t.In(time.Local)
	return t.Year() == b.Day.Year() && t.Month() == b.Day.Month()
}

// Buckets generates the ordered bucket boundaries for a range. The same
// boundaries back both task and study series.
func Buckets(rng Range, today time.Time) []Bucket {
	day := date.StartOfDay(today)

	switch rng {
	case RangeWeek:
		buckets := make([]Bucket, 0, 7)
		for offset := -6; offset <= 0; offset++ {
			d := day.AddDate(0, 0, offset)
			buckets = append(buckets, Bucket{
				Label:     d.Weekday().String()[:3],
				ShowLabel: true,
				Day:       d,
			})
		}
		return buckets

	case RangeMonth:
		days := date.DaysIn(day)
		buckets := make([]Bucket, 0, days)
		first := date.StartOfMonth(day)
		for i := 0; i < days; i++ {
			d := first.AddDate(0, 0, i)
			show := monthLabelDays[i+1] || i+1 == days
			label := ""
			if show {
				label = strconv.Itoa(i + 1)
			}
			buckets = append(buckets, Bucket{
				Label:     label,
				ShowLabel: show,
				Day:       d,
			})
		}
		return buckets

	case RangeYear:
		buckets := make([]Bucket, 0, 12)
		for month := time.January; month <= time.December; month++ {
			d := time.Date(day.Year(), month, 1, 0, 0, 0, 0, day.Location())
			buckets = append(buckets, Bucket{
				Label:      d.Month().String()[:3],
				ShowLabel:  true,
				Day:        d,
				wholeMonth: true,
			})
		}
		return buckets

	default:
		return []Bucket{{Label: "Today", ShowLabel: true, Day: day}}
	}
}

// TaskBucket is one slot of a task series
type TaskBucket struct {
	Bucket
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Remaining int `json:"remaining"`
}

// TaskSeries buckets tasks into a time-windowed series of counts.
// An empty record set yields all-zero buckets, records with malformed
// dates are excluded from every bucket.
func TaskSeries(records []tasks.Task, rng Range, today time.Time) []TaskBucket {
	buckets := Buckets(rng, today)
	series := make([]TaskBucket, len(buckets))

	for i, bucket := range buckets {
		series[i].Bucket = bucket

		for _, record := range records {
			if !bucket.Contains(record.Date) {
				continue
			}

			series[i].Total++
			if record.Completed {
				series[i].Completed++
			}
		}

		series[i].Remaining = series[i].Total - series[i].Completed
	}

	return series
}

// StudyBucket is one slot of a study hours series
type StudyBucket struct {
	Bucket
	Hours float64 `json:"hours"`
}

// StudySeries buckets study sessions into a time-windowed series of hour sums
func StudySeries(sessions []study.Session, rng Range, today time.Time) []StudyBucket {
	buckets := Buckets(rng, today)
	series := make([]StudyBucket, len(buckets))

	for i, bucket := range buckets {
		series[i].Bucket = bucket

		for _, session := range sessions {
			if !bucket.Contains(session.Date) {
				continue
			}

			series[i].Hours += session.Hours
		}
	}

	return series
}
