package auth

import (
	"context"
	"errors"
	"net/http"

	sysauth "github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/limits"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	userstore "github.com/gashatech/adminhub/internal/app/store/users"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles POST /api/auth/login.
//
// Unknown email and wrong password produce the identical 401 so the
// endpoint cannot be used to probe which emails exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !envelope.Decode(w, r, limits.MaxJSONBodySize, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		envelope.Fail(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if ok, reason := h.Logins.Check(r, req.Email); !ok {
		sysauth.LogAuthFailure(h.Log, req.Email, "rate limited")
		envelope.Fail(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			sysauth.LogAuthFailure(h.Log, req.Email, "unknown email")
			envelope.Fail(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.Log.Error("login: user lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	if !userstore.VerifyPassword(user, req.Password) {
		sysauth.LogAuthFailure(h.Log, req.Email, "wrong password")
		envelope.Fail(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	h.Logins.ResetEmail(req.Email)
	h.issueSession(w, user)
}

// issueSession checks account status, signs a token, and writes the
// session payload. Shared by password and Google sign-in.
func (h *Handler) issueSession(w http.ResponseWriter, user *models.User) {
	if user.Status != "active" {
		sysauth.LogAuthFailure(h.Log, user.Email, "inactive account")
		envelope.Fail(w, http.StatusForbidden, "account is inactive")
		return
	}

	token, err := h.Tokens.Issue(sysauth.SessionUser{
		ID:      user.ID.Hex(),
		Name:    user.FullName,
		Email:   user.Email,
		Role:    user.Role,
		Modules: user.Modules,
	})
	if err != nil {
		h.Log.Error("login: token issue failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	envelope.OK(w, http.StatusOK, sessionPayload{
		Token: token,
		User:  toUserPayload(user),
	}, "signed in")
}

func toUserPayload(u *models.User) userPayload {
	modules := u.Modules
	if modules == nil {
		modules = []string{}
	}
	return userPayload{
		ID:       u.ID.Hex(),
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		Modules:  modules,
		Status:   u.Status,
	}
}
