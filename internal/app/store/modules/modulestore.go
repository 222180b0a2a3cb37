package modulestore

import (
	"context"
	"errors"
	"time"

	"github.com/gashatech/adminhub/internal/app/system/normalize"
	"github.com/gashatech/adminhub/internal/app/system/status"
	"github.com/gashatech/adminhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrDuplicateModule is returned when a module with the same slug already exists.
	ErrDuplicateModule = errors.New("a module with this name already exists")
	errBadStatus       = errors.New(`status must be "active"|"inactive"|"maintenance"`)
	errNameNeeded      = errors.New("module display name is required")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("modules")}
}

// Create inserts a new module. The slug (Name) is re-derived from the
// display name server-side even though the console derives it first:
// the stored value must never disagree with the display name.
func (s *Store) Create(ctx context.Context, m models.Module) (models.Module, error) {
	m.DisplayName = normalize.Name(m.DisplayName)
	if m.DisplayName == "" {
		return models.Module{}, errNameNeeded
	}
	m.ID = primitive.NewObjectID()
	m.Name = normalize.Slug(m.DisplayName)
	if m.Status == "" {
		m.Status = status.Active
	}
	if !status.IsValid(m.Status) {
		return models.Module{}, errBadStatus
	}

	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Module{}, ErrDuplicateModule
		}
		return models.Module{}, err
	}
	return m, nil
}

// GetByID loads a module by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Module, error) {
	var m models.Module
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return models.Module{}, err
	}
	return m, nil
}

// GetBySlug loads a module by its internal name.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Module, error) {
	var m models.Module
	if err := s.c.FindOne(ctx, bson.M{"name": slug}).Decode(&m); err != nil {
		return models.Module{}, err
	}
	return m, nil
}

// Update modifies a module's mutable fields and refreshes UpdatedAt.
// Changing the display name re-derives the slug, which may collide with
// another module (ErrDuplicateModule).
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, m models.Module) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if m.DisplayName != "" {
		set["display_name"] = normalize.Name(m.DisplayName)
		set["name"] = normalize.Slug(m.DisplayName)
	}
	if m.Description != "" {
		set["description"] = m.Description
	}
	if m.LogoPath != "" {
		set["logo_path"] = m.LogoPath
	}
	if m.Status != "" {
		if !status.IsValid(m.Status) {
			return errBadStatus
		}
		set["status"] = m.Status
	}

	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateModule
		}
		return err
	}
	return nil
}

// Delete removes a module by ID. Returns the number of documents deleted (0 or 1).
// Cascading cleanup (products, user assignments) is the caller's job; the
// handler coordinates it so each store stays single-collection.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// SlugExists checks if a module with the given slug exists.
func (s *Store) SlugExists(ctx context.Context, slug string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"name": slug}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Find returns modules matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Module, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var mods []models.Module
	if err := cur.All(ctx, &mods); err != nil {
		return nil, err
	}
	return mods, nil
}

// Count returns the number of modules matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
