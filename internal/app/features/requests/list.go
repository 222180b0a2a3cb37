package requests

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"github.com/gashatech/adminhub/internal/domain/models"
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

// HandleList handles GET /api/requests.
//
// Supports status/module filters, lowercase email-prefix search, and
// limit/offset pagination. Newest requests come first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	q := r.URL.Query()
	filter := bson.M{}

	if status := strings.ToLower(strings.TrimSpace(q.Get("status"))); status != "" {
		filter["status"] = status
	}
	if module := strings.TrimSpace(q.Get("module")); module != "" {
		filter["module"] = module
	}
	if search := strings.TrimSpace(q.Get("search")); search != "" {
		lower := strings.ToLower(search)
		filter["email"] = bson.M{"$gte": lower, "$lt": lower + "\uffff"}
	}

	limit, offset := pageParams(q.Get("limit"), q.Get("offset"))

	total, err := h.Requests.Count(ctx, filter)
	if err != nil {
		h.Log.Error("requests list: count failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to list requests")
		return
	}

	found, err := h.Requests.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit))
	if err != nil {
		h.Log.Error("requests list: find failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to list requests")
		return
	}

	if found == nil {
		found = []models.DownloadRequest{}
	}
	envelope.OK(w, http.StatusOK, listPayload{Requests: found, Total: total}, "")
}

// HandleGet handles GET /api/requests/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	req, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusNotFound, "request not found")
			return
		}
		h.Log.Error("requests get: lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to load request")
		return
	}

	envelope.OK(w, http.StatusOK, req, "")
}

// HandleSummary handles GET /api/requests/summary, returning
// pending/completed/rejected totals for the dashboard cards.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	counts, err := h.Requests.CountByStatus(ctx)
	if err != nil {
		h.Log.Error("requests summary: count failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to summarize requests")
		return
	}

	envelope.OK(w, http.StatusOK, counts, "")
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
