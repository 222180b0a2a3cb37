package content

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	contentstore "github.com/gashatech/adminhub/internal/app/store/content"
	sysauth "github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/limits"
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

// HandleList handles GET /api/content. Newest entries first; supports a
// status filter and case-folded title-prefix search.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	q := r.URL.Query()
	filter := bson.M{}

	if status := strings.ToLower(strings.TrimSpace(q.Get("status"))); status != "" {
		filter["status"] = status
	}
	if search := strings.TrimSpace(q.Get("search")); search != "" {
		fold := text.Fold(search)
		filter["title_ci"] = bson.M{"$gte": fold, "$lt": fold + "\uffff"}
	}

	limit, offset := pageParams(q.Get("limit"), q.Get("offset"))

	total, err := h.Content.Count(ctx, filter)
	if err != nil {
		h.Log.Error("content list: count failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to list content")
		return
	}

	found, err := h.Content.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit))
	if err != nil {
		h.Log.Error("content list: find failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to list content")
		return
	}

	if found == nil {
		found = []models.Content{}
	}
	envelope.OK(w, http.StatusOK, listPayload{Entries: found, Total: total}, "")
}

// HandleGet handles GET /api/content/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	entry, err := h.Content.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusNotFound, "content not found")
			return
		}
		h.Log.Error("content get: lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to load content")
		return
	}

	envelope.OK(w, http.StatusOK, entry, "")
}

type createRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Tags   []string `json:"tags"`
	Status string   `json:"status"`
}

// HandleCreate handles POST /api/content. The signed-in operator is
// recorded as the author.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !envelope.Decode(w, r, limits.MaxJSONBodySize, &req) {
		return
	}

	entry := models.Content{
		Title:  req.Title,
		Body:   req.Body,
		Tags:   req.Tags,
		Status: req.Status,
	}
	if current, ok := sysauth.CurrentUser(r); ok {
		if authorID, err := primitive.ObjectIDFromHex(current.ID); err == nil {
			entry.AuthorID = &authorID
		}
		entry.AuthorName = current.Name
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Content.Create(ctx, entry)
	if err != nil {
		envelope.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Log.Info("content created",
		zap.String("title", created.Title),
		zap.String("status", created.Status),
	)
	envelope.OK(w, http.StatusCreated, created, "content created")
}

type updateRequest struct {
	Title  string   `json:"title"`
	Body   *string  `json:"body"`
	Tags   []string `json:"tags"`
	Status string   `json:"status"`
}

// HandleUpdate handles PUT /api/content/{id}. Body is a pointer so an
// omitted body keeps the stored text while an empty string clears it.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if !envelope.Decode(w, r, limits.MaxJSONBodySize, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Content.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusNotFound, "content not found")
			return
		}
		h.Log.Error("content update: lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to update content")
		return
	}

	err := h.Content.UpdateFields(ctx, id, contentstore.Update{
		Title:  req.Title,
		Body:   req.Body,
		Tags:   req.Tags,
		Status: req.Status,
	})
	if err != nil {
		envelope.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Content.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("content update: reload failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to update content")
		return
	}

	envelope.OK(w, http.StatusOK, updated, "content updated")
}

// HandleDelete handles DELETE /api/content/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Content.Delete(ctx, id)
	if err != nil {
		h.Log.Error("content delete: failed", zap.String("id", id.Hex()), zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to delete content")
		return
	}
	if deleted == 0 {
		envelope.Fail(w, http.StatusNotFound, "content not found")
		return
	}

	envelope.OK(w, http.StatusOK, nil, "content deleted")
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
