package tasks

import (
	"context"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/logger"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskRepositoryInterface is an interface for a *MongoDBTaskRepository
type TaskRepositoryInterface interface {
	Add(ctx context.Context, task *Task) error
	FindAll(ctx context.Context, userID string) ([]Task, error)
	FindByID(ctx context.Context, taskID string, userID string) (*Task, error)
	FindBetween(ctx context.Context, userID string, from time.Time, to time.Time) ([]Task, error)
	SetCompleted(ctx context.Context, taskID string, userID string, completed bool) error
	Delete(ctx context.Context, taskID string, userID string) error
}

// TaskObserver is notified whenever a task changes
type TaskObserver interface {
	OnNotify(task *Task)
}

// MongoDBTaskRepository does everything related to storing and finding tasks
type MongoDBTaskRepository struct {
	DB          *mongo.Collection
	Logger      logger.Interface
	subscribers []TaskObserver
}

// Add adds a task
func (s *MongoDBTaskRepository) Add(ctx context.Context, task *Task) error {
	task.CreatedAt = time.Now()
	task.LastModifiedAt = time.Now()
	task.ID = primitive.NewObjectID()

	_, err := s.DB.InsertOne(ctx, task)
	if err != nil {
		return err
	}

	s.Publish(task)

	return nil
}

// FindAll finds all tasks of a user sorted by date
func (s *MongoDBTaskRepository) FindAll(ctx context.Context, userID string) ([]Task, error) {
	t := []Task{}

	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"date": 1})

	cursor, err := s.DB.Find(ctx, bson.M{"userId": userObjectID}, findOptions)
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &t)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// FindByID finds a specific task by ID
func (s *MongoDBTaskRepository) FindByID(ctx context.Context, taskID string, userID string) (*Task, error) {
	t := Task{}

	taskObjectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, err
	}
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	result := s.DB.FindOne(ctx, bson.M{"_id": taskObjectID, "userId": userObjectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	err = result.Decode(&t)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// FindBetween finds all tasks of a user dated inside [from, to]
func (s *MongoDBTaskRepository) FindBetween(ctx context.Context, userID string, from time.Time, to time.Time) ([]Task, error) {
	t := []Task{}

	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"date": 1})

	cursor, err := s.DB.Find(ctx, bson.M{
		"userId": userObjectID,
		"date":   bson.M{"$gte": from, "$lte": to},
	}, findOptions)
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &t)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// SetCompleted toggles the completed flag of a task
func (s *MongoDBTaskRepository) SetCompleted(ctx context.Context, taskID string, userID string, completed bool) error {
	taskObjectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return err
	}
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	result, err := s.DB.UpdateOne(ctx,
		bson.M{"_id": taskObjectID, "userId": userObjectID},
		bson.M{"$set": bson.M{
			"completed":      completed,
			"lastModifiedAt": time.Now(),
		}})
	if err != nil {
		return err
	}

	if result.MatchedCount != 1 {
		return errors.New("updated count != 1")
	}

	s.Publish(&Task{ID: taskObjectID, UserID: userObjectID, Completed: completed})

	return nil
}

// Delete deletes a task unrecoverable from the database
func (s *MongoDBTaskRepository) Delete(ctx context.Context, taskID string, userID string) error {
	taskObjectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return err
	}
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	_, err = s.DB.DeleteOne(ctx, bson.M{"_id": taskObjectID, "userId": userObjectID})
	if err != nil {
		return err
	}

	return nil
}

// Subscribe is useful for listening to task changes
func (s *MongoDBTaskRepository) Subscribe(o TaskObserver) {
	s.subscribers = append(s.subscribers, o)
}

// Publish publishes a task to all subscribers
func (s *MongoDBTaskRepository) Publish(task *Task) {
	for _, subscriber := range s.subscribers {
		go subscriber.OnNotify(task)
	}
}
