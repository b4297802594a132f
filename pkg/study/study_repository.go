package study

import (
	"context"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StudyRepositoryInterface is an interface for a *MongoDBStudyRepository
type StudyRepositoryInterface interface {
	AddSession(ctx context.Context, session *Session) error
	FindAllSessions(ctx context.Context, userID string) ([]Session, error)
	DeleteSession(ctx context.Context, sessionID string, userID string) error
	UpsertGoal(ctx context.Context, goal *Goal) error
	FindGoal(ctx context.Context, userID string) (*Goal, error)
}

// MongoDBStudyRepository stores study sessions and the daily goal
type MongoDBStudyRepository struct {
	Sessions *mongo.Collection
	Goals    *mongo.Collection
	Logger   logger.Interface
}

// AddSession adds a study session
func (s *MongoDBStudyRepository) AddSession(ctx context.Context, session *Session) error {
	session.CreatedAt = time.Now()
	session.LastModifiedAt = time.Now()
	session.ID = primitive.NewObjectID()

	_, err := s.Sessions.InsertOne(ctx, session)
	return err
}

// FindAllSessions finds all study sessions of a user sorted by date
func (s *MongoDBStudyRepository) FindAllSessions(ctx context.Context, userID string) ([]Session, error) {
	sessions := []Session{}

	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"date": 1})

	cursor, err := s.Sessions.Find(ctx, bson.M{"userId": userObjectID}, findOptions)
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &sessions)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// DeleteSession deletes a study session
func (s *MongoDBStudyRepository) DeleteSession(ctx context.Context, sessionID string, userID string) error {
	sessionObjectID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return err
	}
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	_, err = s.Sessions.DeleteOne(ctx, bson.M{"_id": sessionObjectID, "userId": userObjectID})
	return err
}

// UpsertGoal writes the daily study goal, creating it on first use
func (s *MongoDBStudyRepository) UpsertGoal(ctx context.Context, goal *Goal) error {
	goal.ID = GoalID

	updateOptions := options.Update()
	updateOptions.SetUpsert(true)

	_, err := s.Goals.UpdateOne(ctx,
		bson.M{"goalId": GoalID, "userId": goal.UserID},
		bson.M{"$set": goal}, updateOptions)
	return err
}

// FindGoal finds the daily study goal of a user
func (s *MongoDBStudyRepository) FindGoal(ctx context.Context, userID string) (*Goal, error) {
	goal := Goal{}

	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	result := s.Goals.FindOne(ctx, bson.M{"goalId": GoalID, "userId": userObjectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	err = result.Decode(&goal)
	if err != nil {
		return nil, err
	}

	return &goal, nil
}
