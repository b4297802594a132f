package study

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is the model for a single logged study session.
// One document per log entry, sessions are never merged at write time.
type Session struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId" validate:"required"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	LastModifiedAt time.Time          `json:"lastModifiedAt" bson:"lastModifiedAt"`
	Hours          float64            `json:"hours" bson:"hours" validate:"required,gt=0"`
	Date           time.Time          `json:"date" bson:"date" validate:"required"`
}

// GoalID is the fixed document id of the per-user daily study goal
const GoalID = "dailyStudyGoal"

// Goal is the per-user daily study goal, a singleton document per user
type Goal struct {
	ID     string             `bson:"goalId" json:"id"`
	UserID primitive.ObjectID `json:"userId" bson:"userId" validate:"required"`
	Hours  float64            `json:"hours" bson:"hours" validate:"required,gt=0"`
}
