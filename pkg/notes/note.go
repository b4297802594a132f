package notes

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StickyNote is the model for a sticky note on the dashboard
type StickyNote struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId" validate:"required"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	LastModifiedAt time.Time          `json:"lastModifiedAt" bson:"lastModifiedAt"`
	Title          string             `json:"title" bson:"title"`
	Content        string             `json:"content" bson:"content"`
	Color          string             `json:"color" bson:"color"`
	FolderID       primitive.ObjectID `json:"folderId,omitempty" bson:"folderId,omitempty"`
}

// Folder groups sticky notes
type Folder struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId" validate:"required"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	LastModifiedAt time.Time          `json:"lastModifiedAt" bson:"lastModifiedAt"`
	Name           string             `json:"name" bson:"name" validate:"required"`
}
