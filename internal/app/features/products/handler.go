// internal/app/features/products/handler.go

// Package products implements product management inside modules:
// listing, creation, editing of capability flags, and deletion.
package products

import (
	modulestore "github.com/gashatech/adminhub/internal/app/store/modules"
	productstore "github.com/gashatech/adminhub/internal/app/store/products"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the product-management API. The module store is only
// used to verify that a product's owning module exists.
type Handler struct {
	DB       *mongo.Database
	Products *productstore.Store
	Modules  *modulestore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Products: productstore.New(db),
		Modules:  modulestore.New(db),
		Log:      logger,
	}
}

type listPayload struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}
