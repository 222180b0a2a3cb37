package users

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// HandleList handles GET /api/users.
//
// Supports search (case-folded prefix on name, lowercase prefix on
// email), role/status/module filters, and limit/offset pagination.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	q := r.URL.Query()
	filter := bson.M{}

	if role := strings.ToLower(strings.TrimSpace(q.Get("role"))); role != "" {
		filter["role"] = role
	}
	if status := strings.ToLower(strings.TrimSpace(q.Get("status"))); status != "" {
		filter["status"] = status
	}
	if module := strings.TrimSpace(q.Get("module")); module != "" {
		filter["modules"] = module
	}

	if search := strings.TrimSpace(q.Get("search")); search != "" {
		nameFold := text.Fold(search)
		emailLower := strings.ToLower(search)
		filter["$or"] = []bson.M{
			{"full_name_ci": bson.M{"$gte": nameFold, "$lt": nameFold + "\uffff"}},
			{"email": bson.M{"$gte": emailLower, "$lt": emailLower + "\uffff"}},
		}
	}

	limit, offset := pageParams(q.Get("limit"), q.Get("offset"))

	total, err := h.Users.Count(ctx, filter)
	if err != nil {
		h.Log.Error("users list: count failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	found, err := h.Users.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(offset).
		SetLimit(limit))
	if err != nil {
		h.Log.Error("users list: find failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	rows := make([]userRow, 0, len(found))
	for _, u := range found {
		rows = append(rows, toRow(u))
	}

	envelope.OK(w, http.StatusOK, listPayload{Users: rows, Total: total}, "")
}

// HandleGet handles GET /api/users/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("users get: lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	envelope.OK(w, http.StatusOK, toRow(*user), "")
}

// pageParams parses limit/offset query values with sane bounds.
func pageParams(limitStr, offsetStr string) (int64, int64) {
	limit := int64(defaultListLimit)
	if n, err := strconv.ParseInt(limitStr, 10, 64); err == nil && n > 0 {
		limit = n
		if limit > maxListLimit {
			limit = maxListLimit
		}
	}
	offset := int64(0)
	if n, err := strconv.ParseInt(offsetStr, 10, 64); err == nil && n > 0 {
		offset = n
	}
	return limit, offset
}

// pathID parses the {id} URL parameter, writing a 400 envelope on failure.
func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		envelope.Fail(w, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
