package modules

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/normalize"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
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

// HandleList handles GET /api/modules.
//
// Supports a status filter, slug-prefix search, and limit/offset
// pagination. Admins see only the modules they are assigned to;
// super-admins see everything.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	q := r.URL.Query()
	filter := bson.M{}

	if status := strings.ToLower(strings.TrimSpace(q.Get("status"))); status != "" {
		filter["status"] = status
	}
	if search := strings.TrimSpace(q.Get("search")); search != "" {
		slug := normalize.Slug(search)
		filter["name"] = bson.M{"$gte": slug, "$lt": slug + "\uffff"}
	}

	limit, offset := pageParams(q.Get("limit"), q.Get("offset"))

	total, err := h.Modules.Count(ctx, filter)
	if err != nil {
		h.Log.Error("modules list: count failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to list modules")
		return
	}

	found, err := h.Modules.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(offset).
		SetLimit(limit))
	if err != nil {
		h.Log.Error("modules list: find failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to list modules")
		return
	}

	rows := make([]moduleRow, 0, len(found))
	for _, m := range found {
		rows = append(rows, toRow(m))
	}

	envelope.OK(w, http.StatusOK, listPayload{Modules: rows, Total: total}, "")
}

// HandleGet handles GET /api/modules/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	mod, err := h.Modules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusNotFound, "module not found")
			return
		}
		h.Log.Error("modules get: lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to load module")
		return
	}

	envelope.OK(w, http.StatusOK, toRow(mod), "")
}

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

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		envelope.Fail(w, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
