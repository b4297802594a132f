package habits

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

// HabitRepositoryInterface is an interface for a *MongoDBHabitRepository
type HabitRepositoryInterface interface {
	Add(ctx context.Context, habit *Habit) error
	FindAll(ctx context.Context, userID string) ([]Habit, error)
	FindByID(ctx context.Context, habitID string, userID string) (*Habit, error)
	Update(ctx context.Context, habit *Habit) error
	Delete(ctx context.Context, habitID string, userID string) error
	FindCompletions(ctx context.Context, habitID string, userID string) ([]Completion, error)
	UpsertCompletion(ctx context.Context, completion *Completion) error
}

// MongoDBHabitRepository stores habits and their completions
type MongoDBHabitRepository struct {
	Habits      *mongo.Collection
	Completions *mongo.Collection
	Logger      logger.Interface
}

// Add adds a habit
func (s *MongoDBHabitRepository) Add(ctx context.Context, habit *Habit) error {
	habit.CreatedAt = time.Now()
	habit.LastModifiedAt = time.Now()
	habit.ID = primitive.NewObjectID()

	_, err := s.Habits.InsertOne(ctx, habit)
	return err
}

// FindAll finds all habits of a user
func (s *MongoDBHabitRepository) FindAll(ctx context.Context, userID string) ([]Habit, error) {
	habits := []Habit{}

	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"createdAt": 1})

	cursor, err := s.Habits.Find(ctx, bson.M{"userId": userObjectID}, findOptions)
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &habits)
	if err != nil {
		return nil, err
	}

	return habits, nil
}

// FindByID finds a specific habit by ID
func (s *MongoDBHabitRepository) FindByID(ctx context.Context, habitID string, userID string) (*Habit, error) {
	habit := Habit{}

	habitObjectID, err := primitive.ObjectIDFromHex(habitID)
	if err != nil {
		return nil, err
	}
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	result := s.Habits.FindOne(ctx, bson.M{"_id": habitObjectID, "userId": userObjectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	err = result.Decode(&habit)
	if err != nil {
		return nil, err
	}

	return &habit, nil
}

// Update updates a habit
func (s *MongoDBHabitRepository) Update(ctx context.Context, habit *Habit) error {
	habit.LastModifiedAt = time.Now()

	result, err := s.Habits.UpdateOne(ctx,
		bson.M{"_id": habit.ID, "userId": habit.UserID},
		bson.M{"$set": habit})
	if err != nil {
		return err
	}

	if result.MatchedCount != 1 {
		return errors.New("updated count != 1")
	}

	return nil
}

// Delete deletes a habit and all its completions
func (s *MongoDBHabitRepository) Delete(ctx context.Context, habitID string, userID string) error {
	habitObjectID, err := primitive.ObjectIDFromHex(habitID)
	if err != nil {
		return err
	}
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	_, err = s.Habits.DeleteOne(ctx, bson.M{"_id": habitObjectID, "userId": userObjectID})
	if err != nil {
		return err
	}

	_, err = s.Completions.DeleteMany(ctx, bson.M{"habitId": habitObjectID, "userId": userObjectID})
	return err
}

// FindCompletions finds all completion records of a habit
func (s *MongoDBHabitRepository) FindCompletions(ctx context.Context, habitID string, userID string) ([]Completion, error) {
	completions := []Completion{}

	habitObjectID, err := primitive.ObjectIDFromHex(habitID)
	if err != nil {
		return nil, err
	}
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	cursor, err := s.Completions.Find(ctx, bson.M{"habitId": habitObjectID, "userId": userObjectID})
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &completions)
	if err != nil {
		return nil, err
	}

	return completions, nil
}

// UpsertCompletion writes the completion record for one (habit, day) pair
func (s *MongoDBHabitRepository) UpsertCompletion(ctx context.Context, completion *Completion) error {
	if completion.ID.IsZero() {
		completion.ID = primitive.NewObjectID()
	}

	updateOptions := options.Update()
	updateOptions.SetUpsert(true)

	_, err := s.Completions.UpdateOne(ctx,
		bson.M{
			"habitId": completion.HabitID,
			"userId":  completion.UserID,
			"date":    completion.Date,
		},
		bson.M{"$set": bson.M{
			"completed": completion.Completed,
			"value":     completion.Value,
		}, "$setOnInsert": bson.M{
			"_id":     completion.ID,
			"habitId": completion.HabitID,
			"userId":  completion.UserID,
			"date":    completion.Date,
		}}, updateOptions)
	return err
}
