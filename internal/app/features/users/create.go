package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/gashatech/adminhub/internal/app/store/users"
	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/inputval"
	"github.com/gashatech/adminhub/internal/app/system/limits"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.uber.org/zap"
)

const minPasswordLength = 8

type createRequest struct {
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     string   `json:"role"`
	Modules  []string `json:"modules"`
	Status   string   `json:"status"`
}

// HandleCreate handles POST /api/users.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !envelope.Decode(w, r, limits.MaxJSONBodySize, &req) {
		return
	}

	if req.FullName == "" {
		envelope.Fail(w, http.StatusBadRequest, "full name is required")
		return
	}
	if !inputval.IsValidEmail(req.Email) {
		envelope.Fail(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < minPasswordLength {
		envelope.Fail(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Users.Create(ctx, models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		Modules:  req.Modules,
		Status:   req.Status,
	}, req.Password)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			envelope.Fail(w, http.StatusConflict, err.Error())
			return
		}
		// Validation errors from the store (bad role, missing modules)
		// read fine as operator-facing messages.
		envelope.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Log.Info("user created",
		zap.String("email", created.Email),
		zap.String("role", created.Role),
	)
	envelope.OK(w, http.StatusCreated, toRow(created), "user created")
}
