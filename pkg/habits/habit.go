package habits

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Type distinguishes how a habit is tracked
type Type string

const (
	// TypeBinary is a habit tracked as done/not-done per day
	TypeBinary Type = "binary"
	// TypeQuantitative is a habit tracked as a numeric value per day
	TypeQuantitative Type = "quantitative"
)

// Frequency declares on which days a habit is meant to be done
type Frequency string

const (
	// FrequencyDaily is every day
	FrequencyDaily Frequency = "daily"
	// FrequencyWeekly is once per week
	FrequencyWeekly Frequency = "weekly"
	// FrequencyWeekdays is monday through friday
	FrequencyWeekdays Frequency = "weekdays"
	// FrequencyWeekends is saturday and sunday
	FrequencyWeekends Frequency = "weekends"
)

// Habit is the model for a tracked habit
type Habit struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId" validate:"required"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	LastModifiedAt time.Time          `json:"lastModifiedAt" bson:"lastModifiedAt"`
	Name           string             `json:"name" bson:"name" validate:"required"`
	Description    string             `json:"description" bson:"description"`
	Color          string             `json:"color" bson:"color" validate:"required"`
	Frequency      Frequency          `json:"frequency" bson:"frequency" validate:"required,oneof=daily weekly weekdays weekends"`
	Type           Type               `json:"type" bson:"type" validate:"required,oneof=binary quantitative"`
	Target         int                `json:"target" bson:"target"`
	Unit           string             `json:"unit" bson:"unit"`
}

// Completion is one record per (habit, calendar day). For quantitative
// habits only Value is authoritative, the completed state is derived.
type Completion struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId" validate:"required"`
	HabitID   primitive.ObjectID `json:"habitId" bson:"habitId" validate:"required"`
	Date      string             `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	Completed bool               `json:"completed" bson:"completed"`
	Value     int                `json:"value" bson:"value"`
}
