package habits

import (
	"reflect"
	"testing"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/date"
)

var semanticsToday = time.Date(2022, 3, 9, 12, 0, 0, 0, time.Local)

func binaryHabit() *Habit {
	return &Habit{Name: "read", Type: TypeBinary, Frequency: FrequencyDaily}
}

func quantitativeHabit(target int) *Habit {
	return &Habit{Name: "water", Type: TypeQuantitative, Frequency: FrequencyDaily, Target: target, Unit: "glasses"}
}

func completionOn(offset int, completed bool, value int) Completion {
	return Completion{
		Date:      date.DayKey(semanticsToday.AddDate(0, 0, offset)),
		Completed: completed,
		Value:     value,
	}
}

func TestIsDayCompleted(t *testing.T) {
	var completionTests = []struct {
		name       string
		habit      *Habit
		completion []Completion
		out        bool
	}{
		{"binary done", binaryHabit(), []Completion{completionOn(0, true, 0)}, true},
		{"binary undone record", binaryHabit(), []Completion{completionOn(0, false, 0)}, false},
		{"binary missing record", binaryHabit(), nil, false},
		{"quantitative at target", quantitativeHabit(8), []Completion{completionOn(0, false, 8)}, true},
		{"quantitative above target", quantitativeHabit(8), []Completion{completionOn(0, false, 10)}, true},
		{"quantitative below target", quantitativeHabit(8), []Completion{completionOn(0, false, 7)}, false},
		{"quantitative missing record", quantitativeHabit(8), nil, false},
		{"zero target falls back to 1", quantitativeHabit(0), []Completion{completionOn(0, false, 1)}, true},
		{"negative target falls back to 1", quantitativeHabit(-3), []Completion{completionOn(0, false, 0)}, false},
	}

	for _, tt := range completionTests {
		set := NewCompletionSet(tt.completion)
		if got := IsDayCompleted(tt.habit, set, semanticsToday); got != tt.out {
			t.Errorf("%s: IsDayCompleted = %v, want %v", tt.name, got, tt.out)
		}
	}
}

func TestCalculateStreakBinary(t *testing.T) {
	set := NewCompletionSet([]Completion{
		completionOn(0, true, 0),
		completionOn(-1, true, 0),
		completionOn(-2, true, 0),
		// miss on day -3
		completionOn(-4, true, 0),
	})

	if got := CalculateStreak(binaryHabit(), set, semanticsToday); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}

func TestCalculateStreakQuantitative(t *testing.T) {
	set := NewCompletionSet([]Completion{
		completionOn(0, false, 10),
		completionOn(-1, false, 9),
		completionOn(-2, false, 8),
		completionOn(-3, false, 7), // below target, breaks the run
	})

	if got := CalculateStreak(quantitativeHabit(8), set, semanticsToday); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}

func TestCalculateStreakMissToday(t *testing.T) {
	// a miss today keeps yesterday's unbroken run alive
	set := NewCompletionSet([]Completion{
		completionOn(-1, true, 0),
		completionOn(-2, true, 0),
	})

	if got := CalculateStreak(binaryHabit(), set, semanticsToday); got != 2 {
		t.Errorf("streak = %d, want 2", got)
	}

	// neither today nor yesterday completed means 0, no further scanning
	set = NewCompletionSet([]Completion{
		completionOn(-2, true, 0),
		completionOn(-3, true, 0),
	})

	if got := CalculateStreak(binaryHabit(), set, semanticsToday); got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
}

func TestCompletionRate(t *testing.T) {
	if got := CompletionRate(binaryHabit(), NewCompletionSet(nil), semanticsToday); got != 0 {
		t.Errorf("rate with no completions = %d, want 0", got)
	}

	var all []Completion
	for offset := -29; offset <= 0; offset++ {
		all = append(all, completionOn(offset, true, 0))
	}
	if got := CompletionRate(binaryHabit(), NewCompletionSet(all), semanticsToday); got != 100 {
		t.Errorf("rate with every day completed = %d, want 100", got)
	}

	var half []Completion
	for offset := -14; offset <= 0; offset++ {
		half = append(half, completionOn(offset, true, 0))
	}
	if got := CompletionRate(binaryHabit(), NewCompletionSet(half), semanticsToday); got != 50 {
		t.Errorf("rate with 15 of 30 days = %d, want 50", got)
	}
}

func TestStatsDataQuantitative(t *testing.T) {
	habit := quantitativeHabit(8)
	set := NewCompletionSet([]Completion{
		completionOn(0, false, 10), // target met
		completionOn(-1, false, 4), // partial
		completionOn(-2, false, 0), // missed, same as no record
	})

	stats := StatsData(habit, set, semanticsToday)

	if len(stats.Series) != 30 {
		t.Fatalf("series has %d points, want 30", len(stats.Series))
	}

	wantPie := PieBreakdown{TargetMet: 1, Partial: 1, Missed: 28}
	if !reflect.DeepEqual(stats.Pie, wantPie) {
		t.Errorf("pie = %+v, want %+v", stats.Pie, wantPie)
	}

	if stats.CompletedCount != 1 || stats.MissedCount != 29 {
		t.Errorf("counts = %d/%d, want 1/29", stats.CompletedCount, stats.MissedCount)
	}

	// 14 over 30 days rounded to one decimal
	if stats.AverageValue != 0.5 {
		t.Errorf("average value = %v, want 0.5", stats.AverageValue)
	}

	last := stats.Series[29]
	if last.Date != date.DayKey(semanticsToday) || last.Value != 10 || !last.Completed {
		t.Errorf("last series point = %+v", last)
	}
}

func TestStatsDataBinary(t *testing.T) {
	set := NewCompletionSet([]Completion{
		completionOn(0, true, 0),
		completionOn(-3, true, 0),
	})

	stats := StatsData(binaryHabit(), set, semanticsToday)

	if stats.Pie.Partial != 0 {
		t.Errorf("binary pie has partial slice: %+v", stats.Pie)
	}

	if stats.Pie.TargetMet != 2 || stats.Pie.Missed != 28 {
		t.Errorf("pie = %+v, want 2 completed and 28 missed", stats.Pie)
	}

	if stats.AverageValue != 0 {
		t.Errorf("binary stats carry an average value: %v", stats.AverageValue)
	}
}
