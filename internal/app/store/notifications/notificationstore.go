package notificationstore

import (
	"context"
	"errors"
	"time"

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
	errTitleNeeded = errors.New("notification title is required")
	errBadLevel    = errors.New(`level must be "info"|"warning"|"critical"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notifications")}
}

func validLevel(level string) bool {
	switch level {
	case "info", "warning", "critical":
		return true
	}
	return false
}

// Create inserts a new notification. Level defaults to info.
func (s *Store) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	if n.Title == "" {
		return models.Notification{}, errTitleNeeded
	}
	if n.Level == "" {
		n.Level = "info"
	}
	if !validLevel(n.Level) {
		return models.Notification{}, errBadLevel
	}

	n.ID = primitive.NewObjectID()
	n.Read = false
	n.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

// ForUser returns notifications visible to the given user: their own
// plus broadcasts (nil user_id), newest first.
func (s *Store) ForUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Notification, error) {
	filter := bson.M{"$or": []bson.M{
		{"user_id": userID},
		{"user_id": nil},
	}}
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return s.find(ctx, filter, opts)
}

// MarkRead flags a notification as read.
func (s *Store) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"read": true}})
	return err
}

// Delete removes a notification by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns notifications matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Notification, error) {
	return s.find(ctx, filter, opts...)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Notification, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var notes []models.Notification
	if err := cur.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Count returns the number of notifications matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
