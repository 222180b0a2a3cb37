// internal/domain/models/product.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a sellable/downloadable item belonging to exactly one module.
// The three capability flags independently control which actions are
// offered for it (download, request, catalog listing).
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Category    string             `bson:"category" json:"category"` // see categories.go
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Features    []string           `bson:"features,omitempty" json:"features,omitempty"`
	Module      string             `bson:"module" json:"module"` // owning module slug

	DownloadEnabled bool `bson:"download_enabled" json:"download_enabled"`
	RequestEnabled  bool `bson:"request_enabled" json:"request_enabled"`
	CatalogVisible  bool `bson:"catalog_visible" json:"catalog_visible"`

	Status string `bson:"status" json:"status"` // active | inactive | maintenance

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
