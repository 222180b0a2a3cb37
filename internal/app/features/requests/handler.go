// internal/app/features/requests/handler.go

// Package requests implements the download-request workflow: public
// submission, operator review (complete/reject), download release with
// counting, and deletion.
package requests

import (
	metricstore "github.com/gashatech/adminhub/internal/app/store/analytics"
	productstore "github.com/gashatech/adminhub/internal/app/store/products"
	requeststore "github.com/gashatech/adminhub/internal/app/store/requests"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Metric names recorded by this feature.
const (
	metricRequests  = "product_requests"
	metricDownloads = "downloads"
)

type Handler struct {
	DB       *mongo.Database
	Requests *requeststore.Store
	Products *productstore.Store
	Metrics  *metricstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Requests: requeststore.New(db),
		Products: productstore.New(db),
		Metrics:  metricstore.New(db),
		Log:      logger,
	}
}

type listPayload struct {
	Requests []models.DownloadRequest `json:"requests"`
	Total    int64                    `json:"total"`
}
