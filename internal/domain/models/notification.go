// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is an operator-facing message shown in the console header.
// A nil UserID means the notification is broadcast to every operator.
type Notification struct {
	ID     primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title  string              `bson:"title" json:"title"`
	Body   string              `bson:"body,omitempty" json:"body,omitempty"`
	Level  string              `bson:"level" json:"level"` // info | warning | critical
	UserID *primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Read   bool                `bson:"read" json:"read"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
