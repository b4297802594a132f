package tasks

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockTaskRepository is a task repository for testing
type MockTaskRepository struct {
	Tasks []*Task
}

// Add adds a task
func (m *MockTaskRepository) Add(_ context.Context, task *Task) error {
	task.CreatedAt = time.Now()
	task.LastModifiedAt = time.Now()
	task.ID = primitive.NewObjectID()

	m.Tasks = append(m.Tasks, task)
	return nil
}

// FindAll finds all tasks of a user
func (m *MockTaskRepository) FindAll(_ context.Context, userID string) ([]Task, error) {
	userObjectID, _ := primitive.ObjectIDFromHex(userID)

	var tasks []Task
	for _, t := range m.Tasks {
		if t.UserID == userObjectID {
			tasks = append(tasks, *t)
		}
	}

	return tasks, nil
}

// FindByID finds a task
func (m *MockTaskRepository) FindByID(_ context.Context, taskID string, userID string) (*Task, error) {
	taskObjectID, _ := primitive.ObjectIDFromHex(taskID)
	userObjectID, _ := primitive.ObjectIDFromHex(userID)
	for _, t := range m.Tasks {
		if t.ID == taskObjectID && t.UserID == userObjectID {
			return t, nil
		}
	}

	return nil, errors.New("no task found")
}

// FindBetween finds tasks dated inside [from, to]
func (m *MockTaskRepository) FindBetween(_ context.Context, userID string, from time.Time, to time.Time) ([]Task, error) {
	userObjectID, _ := primitive.ObjectIDFromHex(userID)

	var tasks []Task
	for _, t := range m.Tasks {
		if t.UserID != userObjectID {
			continue
		}
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		tasks = append(tasks, *t)
	}

	return tasks, nil
}

// SetCompleted toggles the completed flag
func (m *MockTaskRepository) SetCompleted(_ context.Context, taskID string, userID string, completed bool) error {
	taskObjectID, _ := primitive.ObjectIDFromHex(taskID)
	userObjectID, _ := primitive.ObjectIDFromHex(userID)
	for _, t := range m.Tasks {
		if t.ID == taskObjectID && t.UserID == userObjectID {
			t.Completed = completed
			t.LastModifiedAt = time.Now()
			return nil
		}
	}

	return errors.New("no task found")
}

// Delete deletes a task
func (m *MockTaskRepository) Delete(_ context.Context, taskID string, userID string) error {
	taskObjectID, _ := primitive.ObjectIDFromHex(taskID)
	userObjectID, _ := primitive.ObjectIDFromHex(userID)

	for i, t := range m.Tasks {
		if t.ID == taskObjectID && t.UserID == userObjectID {
			m.Tasks = append(m.Tasks[:i], m.Tasks[i+1:]...)
			return nil
		}
	}

	return errors.New("no task found")
}
