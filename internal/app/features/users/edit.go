package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/gashatech/adminhub/internal/app/store/users"
	sysauth "github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/inputval"
	"github.com/gashatech/adminhub/internal/app/system/limits"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type updateRequest struct {
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Status   string   `json:"status"`
	Modules  []string `json:"modules"`
}

// HandleUpdate handles PUT /api/users/{id}. Omitted fields keep their
// stored values.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if !envelope.Decode(w, r, limits.MaxJSONBodySize, &req) {
		return
	}
	if req.Email != "" && !inputval.IsValidEmail(req.Email) {
		envelope.Fail(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Check existence first so a missing user is a 404, not a silent
	// zero-match update.
	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("users update: lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	err := h.Users.UpdateFields(ctx, id, userstore.Update{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		Status:   req.Status,
		Modules:  req.Modules,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			envelope.Fail(w, http.StatusConflict, err.Error())
			return
		}
		envelope.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("users update: reload failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	envelope.OK(w, http.StatusOK, toRow(*updated), "user updated")
}

type modulesRequest struct {
	Modules []string `json:"modules"`
}

// HandleSetModules handles PUT /api/users/{id}/modules, replacing the
// user's module assignments wholesale.
func (h *Handler) HandleSetModules(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req modulesRequest
	if !envelope.Decode(w, r, limits.MaxJSONBodySize, &req) {
		return
	}
	if req.Modules == nil {
		req.Modules = []string{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("users set-modules: lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to update modules")
		return
	}

	// Stripping the last module from a non-super-admin would leave an
	// operator who can sign in but see nothing.
	if user.Role != "super-admin" && len(req.Modules) == 0 {
		envelope.Fail(w, http.StatusBadRequest, "non-super-admin users must keep at least one module")
		return
	}

	if err := h.Users.SetModules(ctx, id, req.Modules); err != nil {
		h.Log.Error("users set-modules: update failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to update modules")
		return
	}

	updated, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("users set-modules: reload failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to update modules")
		return
	}

	envelope.OK(w, http.StatusOK, toRow(*updated), "modules updated")
}

// HandleDelete handles DELETE /api/users/{id}. Operators cannot delete
// their own account.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if current, ok := sysauth.CurrentUser(r); ok && current.ID == id.Hex() {
		envelope.Fail(w, http.StatusBadRequest, "you cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.Log.Error("users delete: failed", zap.String("id", id.Hex()), zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	if deleted == 0 {
		envelope.Fail(w, http.StatusNotFound, "user not found")
		return
	}

	h.Log.Info("user deleted", zap.String("id", id.Hex()))
	envelope.OK(w, http.StatusOK, nil, "user deleted")
}
