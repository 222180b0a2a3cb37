package requeststore

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
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
	errBadStatus   = errors.New(`status must be "pending"|"completed"|"rejected"`)
	errNameNeeded  = errors.New("requester name is required")
	errEmailNeeded = errors.New("requester email is required")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("download_requests")}
}

const otpAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// newOTP generates an 8-character one-time download password. The
// alphabet skips 0/O/1/I so the code survives being read over the phone.
func newOTP() (string, error) {
	buf := make([]byte, 8)
	max := big.NewInt(int64(len(otpAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = otpAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// Create inserts a new download request. Every new request starts
// pending with a fresh OTP regardless of what the caller supplied.
func (s *Store) Create(ctx context.Context, r models.DownloadRequest) (models.DownloadRequest, error) {
	r.ID = primitive.NewObjectID()
	r.FullName = normalize.Name(r.FullName)
	r.Email = normalize.Email(r.Email)
	r.Status = models.RequestPending
	r.DownloadCount = 0

	if r.FullName == "" {
		return models.DownloadRequest{}, errNameNeeded
	}
	if r.Email == "" {
		return models.DownloadRequest{}, errEmailNeeded
	}

	otp, err := newOTP()
	if err != nil {
		return models.DownloadRequest{}, err
	}
	r.OTP = otp

	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.DownloadRequest{}, err
	}
	return r, nil
}

// GetByID loads a request by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.DownloadRequest, error) {
	var r models.DownloadRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return models.DownloadRequest{}, err
	}
	return r, nil
}

// SetStatus moves a request to a new status.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, st string) error {
	if !models.IsValidRequestStatus(st) {
		return errBadStatus
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     st,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// RecordDownload increments the download counter on a request.
func (s *Store) RecordDownload(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{"download_count": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// Delete removes a request by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns requests matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.DownloadRequest, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reqs []models.DownloadRequest
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// Count returns the number of requests matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// CountByStatus returns pending/completed/rejected totals in one pass.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := map[string]int64{
		models.RequestPending:   0,
		models.RequestCompleted: 0,
		models.RequestRejected:  0,
	}
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
