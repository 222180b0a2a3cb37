// internal/app/features/content/handler.go

// Package content implements the dashboard's blog/news section.
package content

import (
	contentstore "github.com/gashatech/adminhub/internal/app/store/content"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB      *mongo.Database
	Content *contentstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Content: contentstore.New(db),
		Log:     logger,
	}
}

type listPayload struct {
	Entries []models.Content `json:"entries"`
	Total   int64            `json:"total"`
}
