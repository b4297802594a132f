package reminders

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

// ReminderRepositoryInterface is an interface for a *MongoDBReminderRepository
type ReminderRepositoryInterface interface {
	Add(ctx context.Context, reminder *Reminder) error
	FindAll(ctx context.Context, userID string) ([]Reminder, error)
	FindByID(ctx context.Context, reminderID string, userID string) (*Reminder, error)
	FindBetween(ctx context.Context, userID string, from time.Time, to time.Time) ([]Reminder, error)
	FindUpcoming(ctx context.Context, userID string, within time.Duration) ([]Reminder, error)
	Update(ctx context.Context, reminder *Reminder) error
	SetCompleted(ctx context.Context, reminderID string, userID string, completed bool) error
	Delete(ctx context.Context, reminderID string, userID string) error
}

// ReminderObserver is notified whenever a reminder changes
type ReminderObserver interface {
	OnNotify(reminder *Reminder)
}

// MongoDBReminderRepository does everything related to storing and finding reminders
type MongoDBReminderRepository struct {
	DB          *mongo.Collection
	Logger      logger.Interface
	subscribers []ReminderObserver
}

// Add adds a reminder
func (s *MongoDBReminderRepository) Add(ctx context.Context, reminder *Reminder) error {
	reminder.CreatedAt = time.Now()
	reminder.LastModifiedAt = time.Now()
	reminder.ID = primitive.NewObjectID()
	reminder.Active = true

	_, err := s.DB.InsertOne(ctx, reminder)
	if err != nil {
		return err
	}

	s.Publish(reminder)

	return nil
}

// FindAll finds all reminders of a user sorted by due date
func (s *MongoDBReminderRepository) FindAll(ctx context.Context, userID string) ([]Reminder, error) {
	r := []Reminder{}

	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"dueDate": 1})

	cursor, err := s.DB.Find(ctx, bson.M{"userId": userObjectID}, findOptions)
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &r)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// FindByID finds a specific reminder by ID
func (s *MongoDBReminderRepository) FindByID(ctx context.Context, reminderID string, userID string) (*Reminder, error) {
	r := Reminder{}

	reminderObjectID, err := primitive.ObjectIDFromHex(reminderID)
	if err != nil {
		return nil, err
	}
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	result := s.DB.FindOne(ctx, bson.M{"_id": reminderObjectID, "userId": userObjectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	err = result.Decode(&r)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// FindBetween finds all reminders of a user due inside [from, to]
func (s *MongoDBReminderRepository) FindBetween(ctx context.Context, userID string, from time.Time, to time.Time) ([]Reminder, error) {
	r := []Reminder{}

	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"dueDate": 1})

	cursor, err := s.DB.Find(ctx, bson.M{
		"userId":  userObjectID,
		"dueDate": bson.M{"$gte": from, "$lte": to},
	}, findOptions)
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &r)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// FindUpcoming finds active, uncompleted reminders due within the given duration
func (s *MongoDBReminderRepository) FindUpcoming(ctx context.Context, userID string, within time.Duration) ([]Reminder, error) {
	r := []Reminder{}

	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"dueDate": 1})

	cursor, err := s.DB.Find(ctx, bson.M{
		"userId":    userObjectID,
		"active":    true,
		"completed": false,
		"dueDate":   bson.M{"$gte": now, "$lte": now.Add(within)},
	}, findOptions)
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &r)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Update updates a reminder
func (s *MongoDBReminderRepository) Update(ctx context.Context, reminder *Reminder) error {
	reminder.LastModifiedAt = time.Now()

	result, err := s.DB.UpdateOne(ctx,
		bson.M{"_id": reminder.ID, "userId": reminder.UserID},
		bson.M{"$set": reminder})
	if err != nil {
		return err
	}

	if result.MatchedCount != 1 {
		return errors.New("updated count != 1")
	}

	s.Publish(reminder)

	return nil
}

// SetCompleted toggles the completed flag of a reminder
func (s *MongoDBReminderRepository) SetCompleted(ctx context.Context, reminderID string, userID string, completed bool) error {
	reminderObjectID, err := primitive.ObjectIDFromHex(reminderID)
	if err != nil {
		return err
	}
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	result, err := s.DB.UpdateOne(ctx,
		bson.M{"_id": reminderObjectID, "userId": userObjectID},
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

	return nil
}

// Delete deletes a reminder unrecoverable from the database
func (s *MongoDBReminderRepository) Delete(ctx context.Context, reminderID string, userID string) error {
	reminderObjectID, err := primitive.ObjectIDFromHex(reminderID)
	if err != nil {
		return err
	}
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	_, err = s.DB.DeleteOne(ctx, bson.M{"_id": reminderObjectID, "userId": userObjectID})
	if err != nil {
		return err
	}

	return nil
}

// Subscribe is useful for listening to reminder changes
func (s *MongoDBReminderRepository) Subscribe(o ReminderObserver) {
	s.subscribers = append(s.subscribers, o)
}

// Publish publishes a reminder to all subscribers
func (s *MongoDBReminderRepository) Publish(reminder *Reminder) {
	for _, subscriber := range s.subscribers {
		go subscriber.OnNotify(reminder)
	}
}
