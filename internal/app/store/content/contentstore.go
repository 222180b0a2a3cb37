package contentstore

import (
	"context"
	"errors"
	"time"

	"github.com/gashatech/adminhub/internal/app/system/htmlsanitize"
	"github.com/gashatech/adminhub/internal/app/system/normalize"
	"github.com/gashatech/adminhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	errTitleNeeded = errors.New("content title is required")
	errBadStatus   = errors.New(`status must be "draft"|"published"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("content")}
}

func validStatus(st string) bool {
	return st == models.ContentDraft || st == models.ContentPublished
}

// Create inserts a new content entry. The body is sanitized here so no
// caller can slip raw editor HTML past the store.
func (s *Store) Create(ctx context.Context, c models.Content) (models.Content, error) {
	c.Title = normalize.Name(c.Title)
	if c.Title == "" {
		return models.Content{}, errTitleNeeded
	}
	if c.Status == "" {
		c.Status = models.ContentDraft
	}
	if !validStatus(c.Status) {
		return models.Content{}, errBadStatus
	}

	c.ID = primitive.NewObjectID()
	c.TitleCI = text.Fold(c.Title)
	c.Body = htmlsanitize.Sanitize(c.Body)

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Content{}, err
	}
	return c, nil
}

// GetByID loads a content entry by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Content, error) {
	var c models.Content
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Content{}, err
	}
	return c, nil
}

// Update holds the fields that can be changed on an existing entry.
type Update struct {
	Title  string
	Body   *string
	Tags   []string
	Status string
}

// UpdateFields modifies a content entry and refreshes UpdatedAt.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != "" {
		set["title"] = normalize.Name(upd.Title)
		set["title_ci"] = text.Fold(upd.Title)
	}
	if upd.Body != nil {
		set["body"] = htmlsanitize.Sanitize(*upd.Body)
	}
	if upd.Tags != nil {
		set["tags"] = upd.Tags
	}
	if upd.Status != "" {
		if !validStatus(upd.Status) {
			return errBadStatus
		}
		set["status"] = upd.Status
	}

	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Delete removes a content entry by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns content entries matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Content, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.Content
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of entries matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
