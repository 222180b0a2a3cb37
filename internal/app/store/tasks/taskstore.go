package taskstore

import (
	"context"
	"errors"
	"time"

	"github.com/gashatech/adminhub/internal/app/system/normalize"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	errTitleNeeded = errors.New("task title is required")
	errBadStatus   = errors.New(`status must be "open"|"in-progress"|"done"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

// Create inserts a new task. Status defaults to open.
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	t.Title = normalize.Name(t.Title)
	if t.Title == "" {
		return models.Task{}, errTitleNeeded
	}
	if t.Status == "" {
		t.Status = models.TaskOpen
	}
	if !models.IsValidTaskStatus(t.Status) {
		return models.Task{}, errBadStatus
	}

	t.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// GetByID loads a task by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// Update holds the fields that can be changed on an existing task.
type Update struct {
	Title       string
	Description *string
	AssigneeID  *primitive.ObjectID
	Status      string
	DueAt       *time.Time
}

// UpdateFields modifies a task and refreshes UpdatedAt.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != "" {
		set["title"] = normalize.Name(upd.Title)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.AssigneeID != nil {
		set["assignee_id"] = *upd.AssigneeID
	}
	if upd.Status != "" {
		if !models.IsValidTaskStatus(upd.Status) {
			return errBadStatus
		}
		set["status"] = upd.Status
	}
	if upd.DueAt != nil {
		set["due_at"] = *upd.DueAt
	}

	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Delete removes a task by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns tasks matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Task, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Count returns the number of tasks matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
