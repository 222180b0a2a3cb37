// internal/app/features/notifications/handler.go

// Package notifications implements the console's header notification
// feed: per-operator messages plus broadcasts.
package notifications

import (
	notificationstore "github.com/gashatech/adminhub/internal/app/store/notifications"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB            *mongo.Database
	Notifications *notificationstore.Store
	Log           *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Notifications: notificationstore.New(db),
		Log:           logger,
	}
}

type feedPayload struct {
	Notifications []models.Notification `json:"notifications"`
}
