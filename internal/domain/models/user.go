// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a console operator: super-admins, module admins, and
// the supporting marketing/technical/developer roles.
//
// NOTE:
//   - Modules holds the internal names (slugs) of the modules the user is
//     assigned to. Super-admins have access to everything and may leave it
//     empty; every other role must reference at least one module.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password,omitempty" json:"-"` // bcrypt hash
	Role       string             `bson:"role" json:"role"`            // see roles.go
	Modules    []string           `bson:"modules,omitempty" json:"modules,omitempty"`
	Status     string             `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
