// internal/app/features/tasks/handler.go

// Package tasks implements the console's operational to-do list.
package tasks

import (
	taskstore "github.com/gashatech/adminhub/internal/app/store/tasks"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB    *mongo.Database
	Tasks *taskstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Tasks: taskstore.New(db),
		Log:   logger,
	}
}

type listPayload struct {
	Tasks []models.Task `json:"tasks"`
	Total int64         `json:"total"`
}
