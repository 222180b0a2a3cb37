// internal/app/features/modules/handler.go

// Package modules implements product-line (module) management: listing,
// creation, editing, and cascading deletion.
package modules

import (
	"time"

	modulestore "github.com/gashatech/adminhub/internal/app/store/modules"
	productstore "github.com/gashatech/adminhub/internal/app/store/products"
	userstore "github.com/gashatech/adminhub/internal/app/store/users"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the module-management API. Deleting a module cascades
// into the products and users collections, so the handler holds all
// three stores.
type Handler struct {
	DB       *mongo.Database
	Modules  *modulestore.Store
	Products *productstore.Store
	Users    *userstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Modules:  modulestore.New(db),
		Products: productstore.New(db),
		Users:    userstore.New(db),
		Log:      logger,
	}
}

type listPayload struct {
	Modules []moduleRow `json:"modules"`
	Total   int64       `json:"total"`
}

type moduleRow struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description,omitempty"`
	LogoPath    string    `json:"logo_path,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toRow(m models.Module) moduleRow {
	return moduleRow{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		DisplayName: m.DisplayName,
		Description: m.Description,
		LogoPath:    m.LogoPath,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
