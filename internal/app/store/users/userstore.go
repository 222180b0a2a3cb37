package userstore

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
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "super-admin"|"admin"|"marketing"|"technical"|"developer"`)
	errBadStatus      = errors.New(`status must be "active"|"inactive"`)
	errModulesNeeded  = errors.New("non-super-admin users must be assigned at least one module")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields.
// Password is the plaintext password; it is bcrypt-hashed before insert.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.Role = normalize.Role(u.Role)
	if u.Status == "" {
		u.Status = status.Active
	}

	if !models.IsValidRole(u.Role) {
		return models.User{}, errBadRole
	}
	if !status.IsValidUserStatus(u.Status) {
		return models.User{}, errBadStatus
	}
	if models.RequiresModules(u.Role) && len(u.Modules) == 0 {
		return models.User{}, errModulesNeeded
	}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		u.Password = string(hash)
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func VerifyPassword(u *models.User, password string) bool {
	if u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// Update holds the fields that can be changed on an existing user.
// Empty strings / nil slices leave the stored value untouched.
type Update struct {
	FullName string
	Email    string
	Role     string
	Status   string
	Modules  []string
}

// UpdateFields modifies a user's mutable fields and refreshes UpdatedAt.
// Returns ErrDuplicateEmail if the new email belongs to another user.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.FullName != "" {
		set["full_name"] = normalize.Name(upd.FullName)
		set["full_name_ci"] = text.Fold(upd.FullName)
	}
	if upd.Email != "" {
		set["email"] = normalize.Email(upd.Email)
	}
	if upd.Role != "" {
		role := normalize.Role(upd.Role)
		if !models.IsValidRole(role) {
			return errBadRole
		}
		set["role"] = role
	}
	if upd.Status != "" {
		st := normalize.Status(upd.Status)
		if !status.IsValidUserStatus(st) {
			return errBadStatus
		}
		set["status"] = st
	}
	if upd.Modules != nil {
		set["modules"] = upd.Modules
	}

	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// SetModules replaces a user's assigned module slugs.
func (s *Store) SetModules(ctx context.Context, id primitive.ObjectID, slugs []string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"modules":    slugs,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// RemoveModuleFromAll pulls a module slug from every user that references
// it. Used when a module is deleted.
func (s *Store) RemoveModuleFromAll(ctx context.Context, slug string) (int64, error) {
	res, err := s.c.UpdateMany(ctx, bson.M{"modules": slug}, bson.M{
		"$pull": bson.M{"modules": slug},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// RenameModule rewrites a module slug in every user's assignment list.
// Used when a module rename changes its slug.
func (s *Store) RenameModule(ctx context.Context, from, to string) error {
	_, err := s.c.UpdateMany(ctx, bson.M{"modules": from}, bson.M{
		"$set": bson.M{"modules.$": to, "updated_at": time.Now().UTC()},
	})
	return err
}

// Delete removes a user by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EmailExistsForOther checks if an email already exists for a user other than the given ID.
func (s *Store) EmailExistsForOther(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"email": normalize.Email(email),
		"_id":   bson.M{"$ne": excludeID},
	}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// Find returns users matching the given filter with optional find options.
// The caller builds the filter and options (pagination, sorting, projection).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.User, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the number of users matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
