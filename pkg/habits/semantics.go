package habits

import (
	"math"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/date"
)

// statsWindowDays is the trailing window used for rates and stat views
const statsWindowDays = 30

// CompletionSet indexes completions of a single habit by their day key
type CompletionSet map[string]Completion

// NewCompletionSet builds a CompletionSet from raw completion records
func NewCompletionSet(completions []Completion) CompletionSet {
	set := make(CompletionSet, len(completions))
	for _, completion := range completions {
		set[completion.Date] = completion
	}

	return set
}

// TargetOf returns the effective daily target of a habit. Binary habits have
// an implicit target of 1 and a stored non-positive target also falls back
// to 1 so a bad record can never mark every day completed.
func TargetOf(habit *Habit) int {
	if habit.Type == TypeBinary || habit.Target <= 0 {
		return 1
	}

	return habit.Target
}

// ValueOf returns the tracked value for a day, 0 when no record exists
func ValueOf(habit *Habit, set CompletionSet, day time.Time) int {
	completion, ok := set[date.DayKey(day)]
	if !ok {
		return 0
	}

	if habit.Type == TypeBinary {
		if completion.Completed {
			return 1
		}
		return 0
	}

	return completion.Value
}

// IsDayCompleted is the single completion predicate every consumer
// (streaks, rates, pies, series) dispatches through. Binary habits use the
// stored flag, quantitative completion is derived from value vs target.
func IsDayCompleted(habit *Habit, set CompletionSet, day time.Time) bool {
	completion, ok := set[date.DayKey(day)]
	if !ok {
		return false
	}

	if habit.Type == TypeBinary {
		return completion.Completed
	}

	return completion.Value >= TargetOf(habit)
}

// CalculateStreak counts consecutive completed days walking backward from
// today. A miss today does not zero out a run ending yesterday, but when
// neither today nor yesterday is completed the streak is 0.
func CalculateStreak(habit *Habit, set CompletionSet, today time.Time) int {
	day := date.StartOfDay(today)

	if !IsDayCompleted(habit, set, day) {
		day = day.AddDate(0, 0, -1)
		if !IsDayCompleted(habit, set, day) {
			return 0
		}
	}

	streak := 0
	for IsDayCompleted(habit, set, day) {
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}

// CompletionRate returns the percentage of completed days in the trailing
// 30-day window [today-29, today], rounded to a whole number
func CompletionRate(habit *Habit, set CompletionSet, today time.Time) int {
	day := date.StartOfDay(today)

	completed := 0
	for offset := -(statsWindowDays - 1); offset <= 0; offset++ {
		if IsDayCompleted(habit, set, day.AddDate(0, 0, offset)) {
			completed++
		}
	}

	return int(math.Round(float64(completed) * 100 / statsWindowDays))
}

// StatPoint is one day of a habit stats series
type StatPoint struct {
	Date      string `json:"date"`
	Value     int    `json:"value"`
	Completed bool   `json:"completed"`
}

// PieBreakdown is the completion breakdown of the stats window. Partial is
// only populated for quantitative habits.
type PieBreakdown struct {
	TargetMet int `json:"targetMet"`
	Partial   int `json:"partial"`
	Missed    int `json:"missed"`
}

// Stats is the data behind a habit's stats view
type Stats struct {
	Series         []StatPoint  `json:"series"`
	Pie            PieBreakdown `json:"pie"`
	CompletedCount int          `json:"completedCount"`
	MissedCount    int          `json:"missedCount"`
	AverageValue   float64      `json:"averageValue,omitempty"`
}

// StatsData shapes the trailing 30-day stats view of a habit. Quantitative
// habits get a 3-way pie (target met / partial / missed) and an average
// value, binary habits a 2-way pie.
func StatsData(habit *Habit, set CompletionSet, today time.Time) *Stats {
	day := date.StartOfDay(today)
	target := TargetOf(habit)

	stats := &Stats{Series: make([]StatPoint, 0, statsWindowDays)}

	valueSum := 0
	for offset := -(statsWindowDays - 1); offset <= 0; offset++ {
		d := day.AddDate(0, 0, offset)
		value := ValueOf(habit, set, d)
		completed := IsDayCompleted(habit, set, d)

		stats.Series = append(stats.Series, StatPoint{
			Date:      date.DayKey(d),
			Value:     value,
			Completed: completed,
		})

		valueSum += value

		switch {
		case completed:
			stats.Pie.TargetMet++
		case habit.Type == TypeQuantitative && value > 0 && value < target:
			stats.Pie.Partial++
		default:
			stats.Pie.Missed++
		}
	}

	stats.CompletedCount = stats.Pie.TargetMet
	stats.MissedCount = statsWindowDays - stats.CompletedCount

	if habit.Type == TypeQuantitative {
		stats.AverageValue = math.Round(float64(valueSum)/statsWindowDays*10) / 10
	}

	return stats
}
