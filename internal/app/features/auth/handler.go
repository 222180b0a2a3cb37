// internal/app/features/auth/handler.go

// Package auth implements the sign-in endpoints: password login, Google
// sign-in, and the current-user lookup the console calls on boot.
package auth

import (
	userstore "github.com/gashatech/adminhub/internal/app/store/users"
	sysauth "github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/gashatech/adminhub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Users  *userstore.Store
	Tokens *sysauth.TokenManager
	Logins *ratelimit.LoginLimiter
	Log    *zap.Logger

	googleClientID     string
	googleClientSecret string
}

// NewHandler constructs an auth feature handler bound to the given Mongo
// database, token manager, and Google OAuth credentials (blank disables
// Google sign-in).
func NewHandler(db *mongo.Database, tokens *sysauth.TokenManager, googleClientID, googleClientSecret string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:                 db,
		Users:              userstore.New(db),
		Tokens:             tokens,
		Logins:             ratelimit.NewLoginLimiter(),
		Log:                logger,
		googleClientID:     googleClientID,
		googleClientSecret: googleClientSecret,
	}
}

// sessionPayload is what login-style endpoints return: the bearer token
// plus the signed-in user.
type sessionPayload struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID       string   `json:"id"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Modules  []string `json:"modules"`
	Status   string   `json:"status"`
}
