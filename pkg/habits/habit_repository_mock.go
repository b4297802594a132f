package habits

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockHabitRepository is a habit repository for testing
type MockHabitRepository struct {
	Habits      []*Habit
	Completions []*Completion
}

// Add adds a habit
func (m *MockHabitRepository) Add(_ context.Context, habit *Habit) error {
	habit.CreatedAt = time.Now()
	habit.LastModifiedAt = time.Now()
	habit.ID = primitive.NewObjectID()

	m.Habits = append(m.Habits, habit)
	return nil
}

// FindAll finds all habits of a user
func (m *MockHabitRepository) FindAll(_ context.Context, userID string) ([]Habit, error) {
	userObjectID, _ := primitive.ObjectIDFromHex(userID)

	var habits []Habit
	for _, h := range m.Habits {
		if h.UserID == userObjectID {
			habits = append(habits, *h)
		}
	}

	return habits, nil
}

// FindByID finds a habit
func (m *MockHabitRepository) FindByID(_ context.Context, habitID string, userID string) (*Habit, error) {
	habitObjectID, _ := primitive.ObjectIDFromHex(habitID)
	userObjectID, _ := primitive.ObjectIDFromHex(userID)
	for _, h := range m.Habits {
		if h.ID == habitObjectID && h.UserID == userObjectID {
			return h, nil
		}
	}

	return nil, errors.New("no habit found")
}

// Update updates a habit
func (m *MockHabitRepository) Update(_ context.Context, habit *Habit) error {
	for i, h := range m.Habits {
		if h.ID == habit.ID && h.UserID == habit.UserID {
			m.Habits[i] = habit
			return nil
		}
	}

	return errors.New("no habit found")
}

// Delete deletes a habit and its completions
func (m *MockHabitRepository) Delete(_ context.Context, habitID string, userID string) error {
	habitObjectID, _ := primitive.ObjectIDFromHex(habitID)
	userObjectID, _ := primitive.ObjectIDFromHex(userID)

	for i, h := range m.Habits {
		if h.ID == habitObjectID && h.UserID == userObjectID {
			m.Habits = append(m.Habits[:i], m.Habits[i+1:]...)

			var kept []*Completion
			for _, c := range m.Completions {
				if c.HabitID != habitObjectID {
					kept = append(kept, c)
				}
			}
			m.Completions = kept

			return nil
		}
	}

	return errors.New("no habit found")
}

// FindCompletions finds all completions of a habit
func (m *MockHabitRepository) FindCompletions(_ context.Context, habitID string, userID string) ([]Completion, error) {
	habitObjectID, _ := primitive.ObjectIDFromHex(habitID)
	userObjectID, _ := primitive.ObjectIDFromHex(userID)

	var completions []Completion
	for _, c := range m.Completions {
		if c.HabitID == habitObjectID && c.UserID == userObjectID {
			completions = append(completions, *c)
		}
	}

	return completions, nil
}

// UpsertCompletion writes a completion record
func (m *MockHabitRepository) UpsertCompletion(_ context.Context, completion *Completion) error {
	for i, c := range m.Completions {
		if c.HabitID == completion.HabitID && c.UserID == completion.UserID && c.Date == completion.Date {
			m.Completions[i] = completion
			return nil
		}
	}

	completion.ID = primitive.NewObjectID()
	m.Completions = append(m.Completions, completion)
	return nil
}
