// internal/domain/models/module.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Module is a top-level product line (business unit) that owns products
// and has admins assigned to it.
//
// Name is the internal slug derived from DisplayName (lowercased,
// whitespace collapsed to hyphens) and must be unique.
type Module struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"` // slug, unique
	DisplayName string              `bson:"display_name" json:"display_name"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	LogoPath    string              `bson:"logo_path,omitempty" json:"logo_path,omitempty"`
	Status      string              `bson:"status" json:"status"` // active | inactive | maintenance
	CreatedBy   *primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
