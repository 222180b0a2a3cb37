// internal/domain/models/metric.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Metric is a recorded analytics sample. The dashboard only ever reads
// these in aggregate (counted, grouped by module); they are never edited.
type Metric struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Value  float64            `bson:"value" json:"value"`
	Kind   string             `bson:"kind" json:"kind"` // counter | gauge | histogram | summary
	Labels map[string]string  `bson:"labels,omitempty" json:"labels,omitempty"`

	Module string              `bson:"module,omitempty" json:"module,omitempty"`
	UserID *primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`

	RecordedAt time.Time `bson:"recorded_at" json:"recorded_at"`
}

// Metric kind identifiers.
const (
	MetricCounter   = "counter"
	MetricGauge     = "gauge"
	MetricHistogram = "histogram"
	MetricSummary   = "summary"
)

// IsValidMetricKind checks if a value is a valid metric kind.
func IsValidMetricKind(value string) bool {
	switch value {
	case MetricCounter, MetricGauge, MetricHistogram, MetricSummary:
		return true
	}
	return false
}
