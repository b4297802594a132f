package reminders

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockReminderRepository is a reminder repository for testing
type MockReminderRepository struct {
	Reminders []*Reminder
}

// Add adds a reminder
func (m *MockReminderRepository) Add(_ context.Context, reminder *Reminder) error {
	reminder.CreatedAt = time.Now()
	reminder.LastModifiedAt = time.Now()
	reminder.ID = primitive.NewObjectID()
	reminder.Active = true

	m.Reminders = append(m.Reminders, reminder)
	return nil
}

// FindAll finds all reminders of a user
func (m *MockReminderRepository) FindAll(_ context.Context, userID string) ([]Reminder, error) {
	userObjectID, _ := primitive.ObjectIDFromHex(userID)

	found := []Reminder{}
	for _, r := range m.Reminders {
		if r.UserID == userObjectID {
			found = append(found, *r)
		}
	}

	return found, nil
}

// FindByID finds a reminder by ID
func (m *MockReminderRepository) FindByID(_ context.Context, reminderID string, userID string) (*Reminder, error) {
	reminderObjectID, _ := primitive.ObjectIDFromHex(reminderID)
	userObjectID, _ := primitive.ObjectIDFromHex(userID)

	for _, r := range m.Reminders {
		if r.ID == reminderObjectID && r.UserID == userObjectID {
			return r, nil
		}
	}

	return nil, errors.New("no reminder found")
}

// FindBetween finds all reminders of a user due inside [from, to]
func (m *MockReminderRepository) FindBetween(_ context.Context, userID string, from time.Time, to time.Time) ([]Reminder, error) {
	userObjectID, _ := primitive.ObjectIDFromHex(userID)

	found := []Reminder{}
	for _, r := range m.Reminders {
		if r.UserID == userObjectID && !r.DueDate.Before(from) && !r.DueDate.After(to) {
			found = append(found, *r)
		}
	}

	return found, nil
}

// FindUpcoming finds active, uncompleted reminders due within the given duration
func (m *MockReminderRepository) FindUpcoming(_ context.Context, userID string, within time.Duration) ([]Reminder, error) {
	userObjectID, _ := primitive.ObjectIDFromHex(userID)
	now := time.Now()

	found := []Reminder{}
	for _, r := range m.Reminders {
		if r.UserID == userObjectID && r.Active && !r.Completed &&
			!r.DueDate.Before(now) && !r.DueDate.After(now.Add(within)) {
			found = append(found, *r)
		}
	}

	return found, nil
}

// Update updates a reminder
func (m *MockReminderRepository) Update(_ context.Context, reminder *Reminder) error {
	for i, r := range m.Reminders {
		if r.ID == reminder.ID {
			reminder.LastModifiedAt = time.Now()
			m.Reminders[i] = reminder
			return nil
		}
	}

	return errors.New("no reminder found")
}

// SetCompleted toggles the completed flag of a reminder
func (m *MockReminderRepository) SetCompleted(_ context.Context, reminderID string, userID string, completed bool) error {
	r, err := m.FindByID(context.Background(), reminderID, userID)
	if err != nil {
		return err
	}

	r.Completed = completed
	r.LastModifiedAt = time.Now()
	return nil
}

// Delete deletes a reminder
func (m *MockReminderRepository) Delete(_ context.Context, reminderID string, userID string) error {
	reminderObjectID, _ := primitive.ObjectIDFromHex(reminderID)
	userObjectID, _ := primitive.ObjectIDFromHex(userID)

	for i, r := range m.Reminders {
		if r.ID == reminderObjectID && r.UserID == userObjectID {
			m.Reminders = append(m.Reminders[:i], m.Reminders[i+1:]...)
			return nil
		}
	}

	return errors.New("no reminder found")
}
