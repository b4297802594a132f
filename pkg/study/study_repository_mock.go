package study

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockStudyRepository is a study repository for testing
type MockStudyRepository struct {
	Sessions []*Session
	Goals    []*Goal
}

// AddSession adds a session
func (m *MockStudyRepository) AddSession(_ context.Context, session *Session) error {
	session.CreatedAt = time.Now()
	session.LastModifiedAt = time.Now()
	session.ID = primitive.NewObjectID()

	m.Sessions = append(m.Sessions, session)
	return nil
}

// FindAllSessions finds all sessions of a user
func (m *MockStudyRepository) FindAllSessions(_ context.Context, userID string) ([]Session, error) {
	userObjectID, _ := primitive.ObjectIDFromHex(userID)

	var sessions []Session
	for _, s := range m.Sessions {
		if s.UserID == userObjectID {
			sessions = append(sessions, *s)
		}
	}

	return sessions, nil
}

// DeleteSession deletes a session
func (m *MockStudyRepository) DeleteSession(_ context.Context, sessionID string, userID string) error {
	sessionObjectID, _ := primitive.ObjectIDFromHex(sessionID)
	userObjectID, _ := primitive.ObjectIDFromHex(userID)

	for i, s := range m.Sessions {
		if s.ID == sessionObjectID && s.UserID == userObjectID {
			m.Sessions = append(m.Sessions[:i], m.Sessions[i+1:]...)
			return nil
		}
	}

	return errors.New("no session found")
}

// UpsertGoal writes the goal
func (m *MockStudyRepository) UpsertGoal(_ context.Context, goal *Goal) error {
	goal.ID = GoalID

	for i, g := range m.Goals {
		if g.UserID == goal.UserID {
			m.Goals[i] = goal
			return nil
		}
	}

	m.Goals = append(m.Goals, goal)
	return nil
}

// FindGoal finds the goal of a user
func (m *MockStudyRepository) FindGoal(_ context.Context, userID string) (*Goal, error) {
	userObjectID, _ := primitive.ObjectIDFromHex(userID)

	for _, g := range m.Goals {
		if g.UserID == userObjectID {
			return g, nil
		}
	}

	return nil, errors.New("no goal found")
}
