// internal/app/features/users/handler.go

// Package users implements console-operator management: listing,
// creation, editing, module assignment, and deletion.
package users

import (
	"time"

	userstore "github.com/gashatech/adminhub/internal/app/store/users"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB    *mongo.Database
	Users *userstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a users feature handler bound to the given Mongo
// database and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Users: userstore.New(db),
		Log:   logger,
	}
}

// listPayload is the list response: the page of users plus the total
// match count for pagination.
type listPayload struct {
	Users []userRow `json:"users"`
	Total int64     `json:"total"`
}

// userRow mirrors models.User minus the fields the console never shows.
// Modules is always an array, never null; the console indexes into it
// without a guard.
type userRow struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Modules   []string  `json:"modules"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toRow(u models.User) userRow {
	modules := u.Modules
	if modules == nil {
		modules = []string{}
	}
	return userRow{
		ID:        u.ID.Hex(),
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		Modules:   modules,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
