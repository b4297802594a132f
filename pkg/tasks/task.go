package tasks

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is the model for a single dashboard task
type Task struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId" validate:"required"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	LastModifiedAt time.Time          `json:"lastModifiedAt" bson:"lastModifiedAt"`
	Text           string             `json:"text" bson:"text" validate:"required"`
	Date           time.Time          `json:"date" bson:"date" validate:"required"`
	Completed      bool               `json:"completed" bson:"completed"`
}
