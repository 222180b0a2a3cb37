package productstore

import (
	"context"
	"errors"
	"time"

	"github.com/gashatech/adminhub/internal/app/system/normalize"
	"github.com/gashatech/adminhub/internal/app/system/status"
	"github.com/gashatech/adminhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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
	// ErrDuplicateProduct is returned when a product with the same name exists in the module.
	ErrDuplicateProduct = errors.New("a product with this name already exists in the module")
	errBadCategory      = errors.New(`category must be "gasha"|"nisir"|"enyuma"|"codepro"|"biometrics"`)
	errBadStatus        = errors.New(`status must be "active"|"inactive"|"maintenance"`)
	errModuleNeeded     = errors.New("product must belong to a module")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("products")}
}

// Create inserts a new product after normalizing & validating fields.
func (s *Store) Create(ctx context.Context, p models.Product) (models.Product, error) {
	p.ID = primitive.NewObjectID()
	p.Name = normalize.Name(p.Name)
	p.NameCI = text.Fold(p.Name)
	p.Module = normalize.Slug(p.Module)
	if p.Status == "" {
		p.Status = status.Active
	}

	if p.Module == "" {
		return models.Product{}, errModuleNeeded
	}
	if !models.IsValidCategory(p.Category) {
		return models.Product{}, errBadCategory
	}
	if !status.IsValid(p.Status) {
		return models.Product{}, errBadStatus
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Product{}, ErrDuplicateProduct
		}
		return models.Product{}, err
	}
	return p, nil
}

// GetByID loads a product by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Update holds the fields that can be changed on an existing product.
type Update struct {
	Name            string
	Category        string
	Description     string
	Features        []string
	Status          string
	DownloadEnabled *bool
	RequestEnabled  *bool
	CatalogVisible  *bool
}

// UpdateFields modifies a product's mutable fields and refreshes UpdatedAt.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != "" {
		set["name"] = normalize.Name(upd.Name)
		set["name_ci"] = text.Fold(upd.Name)
	}
	if upd.Category != "" {
		if !models.IsValidCategory(upd.Category) {
			return errBadCategory
		}
		set["category"] = upd.Category
	}
	if upd.Description != "" {
		set["description"] = upd.Description
	}
	if upd.Features != nil {
		set["features"] = upd.Features
	}
	if upd.Status != "" {
		if !status.IsValid(upd.Status) {
			return errBadStatus
		}
		set["status"] = upd.Status
	}
	if upd.DownloadEnabled != nil {
		set["download_enabled"] = *upd.DownloadEnabled
	}
	if upd.RequestEnabled != nil {
		set["request_enabled"] = *upd.RequestEnabled
	}
	if upd.CatalogVisible != nil {
		set["catalog_visible"] = *upd.CatalogVisible
	}

	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateProduct
		}
		return err
	}
	return nil
}

// Delete removes a product by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByModule removes every product owned by the given module slug.
// Used by the module-delete cascade.
func (s *Store) DeleteByModule(ctx context.Context, slug string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"module": slug})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// RenameModule repoints every product from one module slug to another.
// Used when a module rename changes its slug.
func (s *Store) RenameModule(ctx context.Context, from, to string) error {
	_, err := s.c.UpdateMany(ctx, bson.M{"module": from}, bson.M{
		"$set": bson.M{"module": to, "updated_at": time.Now().UTC()},
	})
	return err
}

// Find returns products matching the given filter with optional find
// options. Insertion order is preserved when no sort is supplied, which
// the console's by-module filtering relies on.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Product, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var prods []models.Product
	if err := cur.All(ctx, &prods); err != nil {
		return nil, err
	}
	return prods, nil
}

// Count returns the number of products matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// NameExistsInModule checks if a product name (case-insensitive) exists
// within a module, excluding the given ID when non-zero.
func (s *Store) NameExistsInModule(ctx context.Context, module, name string, excludeID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"module":  normalize.Slug(module),
		"name_ci": text.Fold(normalize.Name(name)),
	}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	err := s.c.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
