package products

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"github.com/gashatech/adminhub/internal/domain/models"
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

// HandleList handles GET /api/products.
//
// Supports module/category/status filters, case-folded name-prefix
// search, and limit/offset pagination.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	q := r.URL.Query()
	filter := bson.M{}

	if module := strings.TrimSpace(q.Get("module")); module != "" {
		filter["module"] = module
	}
	if category := strings.ToLower(strings.TrimSpace(q.Get("category"))); category != "" {
		filter["category"] = category
	}
	if status := strings.ToLower(strings.TrimSpace(q.Get("status"))); status != "" {
		filter["status"] = status
	}
	if search := strings.TrimSpace(q.Get("search")); search != "" {
		fold := text.Fold(search)
		filter["name_ci"] = bson.M{"$gte": fold, "$lt": fold + "\uffff"}
	}

	limit, offset := pageParams(q.Get("limit"), q.Get("offset"))

	total, err := h.Products.Count(ctx, filter)
	if err != nil {
		h.Log.Error("products list: count failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	found, err := h.Products.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(offset).
		SetLimit(limit))
	if err != nil {
		h.Log.Error("products list: find failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	if found == nil {
		found = []models.Product{}
	}
	envelope.OK(w, http.StatusOK, listPayload{Products: found, Total: total}, "")
}

// HandleGet handles GET /api/products/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusNotFound, "product not found")
			return
		}
		h.Log.Error("products get: lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	envelope.OK(w, http.StatusOK, p, "")
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
