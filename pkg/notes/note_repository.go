package notes

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

// NoteRepositoryInterface is an interface for a *MongoDBNoteRepository
type NoteRepositoryInterface interface {
	AddNote(ctx context.Context, note *StickyNote) error
	FindAllNotes(ctx context.Context, userID string) ([]StickyNote, error)
	UpdateNote(ctx context.Context, note *StickyNote) error
	DeleteNote(ctx context.Context, noteID string, userID string) error
	AddFolder(ctx context.Context, folder *Folder) error
	FindAllFolders(ctx context.Context, userID string) ([]Folder, error)
	DeleteFolder(ctx context.Context, folderID string, userID string) error
}

// MongoDBNoteRepository stores sticky notes and folders
type MongoDBNoteRepository struct {
	Notes   *mongo.Collection
	Folders *mongo.Collection
	Logger  logger.Interface
}

// AddNote adds a sticky note
func (s *MongoDBNoteRepository) AddNote(ctx context.Context, note *StickyNote) error {
	note.CreatedAt = time.Now()
	note.LastModifiedAt = time.Now()
	note.ID = primitive.NewObjectID()

	_, err := s.Notes.InsertOne(ctx, note)
	return err
}

// FindAllNotes finds all sticky notes of a user
func (s *MongoDBNoteRepository) FindAllNotes(ctx context.Context, userID string) ([]StickyNote, error) {
	notes := []StickyNote{}

	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"lastModifiedAt": -1})

	cursor, err := s.Notes.Find(ctx, bson.M{"userId": userObjectID}, findOptions)
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &notes)
	if err != nil {
		return nil, err
	}

	return notes, nil
}

// UpdateNote updates a sticky note
func (s *MongoDBNoteRepository) UpdateNote(ctx context.Context, note *StickyNote) error {
	note.LastModifiedAt = time.Now()

	result, err := s.Notes.UpdateOne(ctx,
		bson.M{"_id": note.ID, "userId": note.UserID},
		bson.M{"$set": note})
	if err != nil {
		return err
	}

	if result.MatchedCount != 1 {
		return errors.New("updated count != 1")
	}

	return nil
}

// DeleteNote deletes a sticky note
func (s *MongoDBNoteRepository) DeleteNote(ctx context.Context, noteID string, userID string) error {
	noteObjectID, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		return err
	}
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	_, err = s.Notes.DeleteOne(ctx, bson.M{"_id": noteObjectID, "userId": userObjectID})
	return err
}

// AddFolder adds a folder
func (s *MongoDBNoteRepository) AddFolder(ctx context.Context, folder *Folder) error {
	folder.CreatedAt = time.Now()
	folder.LastModifiedAt = time.Now()
	folder.ID = primitive.NewObjectID()

	_, err := s.Folders.InsertOne(ctx, folder)
	return err
}

// FindAllFolders finds all folders of a user
func (s *MongoDBNoteRepository) FindAllFolders(ctx context.Context, userID string) ([]Folder, error) {
	folders := []Folder{}

	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	cursor, err := s.Folders.Find(ctx, bson.M{"userId": userObjectID})
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &folders)
	if err != nil {
		return nil, err
	}

	return folders, nil
}

// DeleteFolder deletes a folder and detaches its notes
func (s *MongoDBNoteRepository) DeleteFolder(ctx context.Context, folderID string, userID string) error {
	folderObjectID, err := primitive.ObjectIDFromHex(folderID)
	if err != nil {
		return err
	}
	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	_, err = s.Folders.DeleteOne(ctx, bson.M{"_id": folderObjectID, "userId": userObjectID})
	if err != nil {
		return err
	}

	_, err = s.Notes.UpdateMany(ctx,
		bson.M{"folderId": folderObjectID, "userId": userObjectID},
		bson.M{"$unset": bson.M{"folderId": ""}})
	return err
}
