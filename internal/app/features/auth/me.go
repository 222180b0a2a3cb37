package auth

import (
	"context"
	"errors"
	"net/http"

	sysauth "github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleMe handles GET /api/auth/me.
//
// The user is re-read from the database rather than echoed from the
// token, so role changes and deactivations take effect on the next
// console boot instead of at token expiry.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := sysauth.CurrentUser(r)
	if !ok {
		envelope.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		envelope.Fail(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusUnauthorized, "account no longer exists")
			return
		}
		h.Log.Error("me: user lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	if user.Status != "active" {
		envelope.Fail(w, http.StatusForbidden, "account is inactive")
		return
	}

	envelope.OK(w, http.StatusOK, toUserPayload(user), "")
}
