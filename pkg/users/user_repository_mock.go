package users

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepository is a user repository for testing
type MockUserRepository struct {
	Users []*User
}

// Add adds a user
func (m *MockUserRepository) Add(_ context.Context, user *User) error {
	user.CreatedAt = time.Now()
	user.LastModifiedAt = time.Now()
	user.ID = primitive.NewObjectID()

	m.Users = append(m.Users, user)
	return nil
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	objectID, _ := primitive.ObjectIDFromHex(id)
	for _, u := range m.Users {
		if u.ID == objectID {
			return u, nil
		}
	}

	return nil, errors.New("no user found")
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.Users {
		if u.Email == email {
			return u, nil
		}
	}

	return nil, errors.New("no user found")
}

// FindByGoogleStateToken finds a user by state token
func (m *MockUserRepository) FindByGoogleStateToken(_ context.Context, stateToken string) (*User, error) {
	for _, u := range m.Users {
		if u.GoogleCalendarConnection.StateToken == stateToken {
			return u, nil
		}
	}

	return nil, errors.New("no user found")
}

// Update updates a user
func (m *MockUserRepository) Update(_ context.Context, user *User) error {
	for i, u := range m.Users {
		if u.ID == user.ID {
			m.Users[i] = user
			return nil
		}
	}

	return errors.New("no user found")
}

// ClearCalendarToken drops the stored calendar token
func (m *MockUserRepository) ClearCalendarToken(_ context.Context, id string) error {
	objectID, _ := primitive.ObjectIDFromHex(id)
	for _, u := range m.Users {
		if u.ID == objectID {
			u.GoogleCalendarConnection.ClearToken()
			return nil
		}
	}

	return errors.New("no user found")
}

// Remove removes a user
func (m *MockUserRepository) Remove(_ context.Context, id string) error {
	objectID, _ := primitive.ObjectIDFromHex(id)
	for i, u := range m.Users {
		if u.ID == objectID {
			m.Users = append(m.Users[:i], m.Users[i+1:]...)
			return nil
		}
	}

	return errors.New("no user found")
}
