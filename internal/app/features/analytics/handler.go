// internal/app/features/analytics/handler.go

// Package analytics implements metric recording and the dashboard
// summary the console's landing page is built from.
package analytics

import (
	metricstore "github.com/gashatech/adminhub/internal/app/store/analytics"
	modulestore "github.com/gashatech/adminhub/internal/app/store/modules"
	productstore "github.com/gashatech/adminhub/internal/app/store/products"
	requeststore "github.com/gashatech/adminhub/internal/app/store/requests"
	userstore "github.com/gashatech/adminhub/internal/app/store/users"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Metric names the summary aggregates over.
const (
	metricDownloads = "downloads"
	metricVisits    = "catalog_visits"
)

type Handler struct {
	DB       *mongo.Database
	Metrics  *metricstore.Store
	Users    *userstore.Store
	Modules  *modulestore.Store
	Products *productstore.Store
	Requests *requeststore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Metrics:  metricstore.New(db),
		Users:    userstore.New(db),
		Modules:  modulestore.New(db),
		Products: productstore.New(db),
		Requests: requeststore.New(db),
		Log:      logger,
	}
}

type listPayload struct {
	Metrics []models.Metric `json:"metrics"`
	Total   int64           `json:"total"`
}

// summaryPayload is the dashboard's landing-page data in one response.
type summaryPayload struct {
	Users             int64                     `json:"users"`
	Modules           int64                     `json:"modules"`
	Products          int64                     `json:"products"`
	Requests          map[string]int64          `json:"requests"`
	DownloadsByModule []metricstore.ModuleTotal `json:"downloads_by_module"`
	VisitsLast30Days  float64                   `json:"visits_last_30_days"`
}
