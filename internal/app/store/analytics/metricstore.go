package metricstore

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

// Store persists analytics samples. Metrics are append-only: nothing
// updates or deletes them from the API.
type Store struct {
	c *mongo.Collection
}

var (
	errBadKind    = errors.New(`kind must be "counter"|"gauge"|"histogram"|"summary"`)
	errNameNeeded = errors.New("metric name is required")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("metrics")}
}

// Record appends a metric sample. A zero RecordedAt is filled in with now.
func (s *Store) Record(ctx context.Context, m models.Metric) (models.Metric, error) {
	if m.Name == "" {
		return models.Metric{}, errNameNeeded
	}
	if m.Kind == "" {
		m.Kind = models.MetricCounter
	}
	if !models.IsValidMetricKind(m.Kind) {
		return models.Metric{}, errBadKind
	}

	m.ID = primitive.NewObjectID()
	if m.RecordedAt.IsZero() {
		m.RecordedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Metric{}, err
	}
	return m, nil
}

// Find returns samples matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Metric, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var metrics []models.Metric
	if err := cur.All(ctx, &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

// Count returns the number of samples matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// ModuleTotal is a per-module sum of a named counter.
type ModuleTotal struct {
	Module string  `bson:"_id" json:"module"`
	Total  float64 `bson:"total" json:"total"`
}

// SumByModule sums a named metric grouped by module, highest first.
// Feeds the dashboard's per-module download and visit charts.
func (s *Store) SumByModule(ctx context.Context, name string) ([]ModuleTotal, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"name": name}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$module",
			"total": bson.M{"$sum": "$value"},
		}}},
		{{Key: "$sort", Value: bson.M{"total": -1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var totals []ModuleTotal
	if err := cur.All(ctx, &totals); err != nil {
		return nil, err
	}
	return totals, nil
}

// SumSince sums a named metric recorded at or after the cutoff.
func (s *Store) SumSince(ctx context.Context, name string, since time.Time) (float64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"name":        name,
			"recorded_at": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$value"},
		}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
