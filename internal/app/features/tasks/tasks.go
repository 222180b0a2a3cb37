package tasks

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	taskstore "github.com/gashatech/adminhub/internal/app/store/tasks"
	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/limits"
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

// HandleList handles GET /api/tasks. Supports status and assignee
// filters; open items first, then by due date.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	q := r.URL.Query()
	filter := bson.M{}

	if status := strings.ToLower(strings.TrimSpace(q.Get("status"))); status != "" {
		filter["status"] = status
	}
	if assignee := strings.TrimSpace(q.Get("assignee")); assignee != "" {
		id, err := primitive.ObjectIDFromHex(assignee)
		if err != nil {
			envelope.Fail(w, http.StatusBadRequest, "invalid assignee id")
			return
		}
		filter["assignee_id"] = id
	}

	limit, offset := pageParams(q.Get("limit"), q.Get("offset"))

	total, err := h.Tasks.Count(ctx, filter)
	if err != nil {
		h.Log.Error("tasks list: count failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	found, err := h.Tasks.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "status", Value: 1}, {Key: "due_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(offset).
		SetLimit(limit))
	if err != nil {
		h.Log.Error("tasks list: find failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	if found == nil {
		found = []models.Task{}
	}
	envelope.OK(w, http.StatusOK, listPayload{Tasks: found, Total: total}, "")
}

type createRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  string     `json:"assignee_id"`
	Status      string     `json:"status"`
	DueAt       *time.Time `json:"due_at"`
}

// HandleCreate handles POST /api/tasks.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !envelope.Decode(w, r, limits.MaxJSONBodySize, &req) {
		return
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueAt:       req.DueAt,
	}
	if req.AssigneeID != "" {
		assignee, err := primitive.ObjectIDFromHex(req.AssigneeID)
		if err != nil {
			envelope.Fail(w, http.StatusBadRequest, "invalid assignee id")
			return
		}
		task.AssigneeID = &assignee
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Tasks.Create(ctx, task)
	if err != nil {
		envelope.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Log.Info("task created", zap.String("title", created.Title))
	envelope.OK(w, http.StatusCreated, created, "task created")
}

type updateRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	AssigneeID  string     `json:"assignee_id"`
	Status      string     `json:"status"`
	DueAt       *time.Time `json:"due_at"`
}

// HandleUpdate handles PUT /api/tasks/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if !envelope.Decode(w, r, limits.MaxJSONBodySize, &req) {
		return
	}

	upd := taskstore.Update{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueAt:       req.DueAt,
	}
	if req.AssigneeID != "" {
		assignee, err := primitive.ObjectIDFromHex(req.AssigneeID)
		if err != nil {
			envelope.Fail(w, http.StatusBadRequest, "invalid assignee id")
			return
		}
		upd.AssigneeID = &assignee
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Tasks.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusNotFound, "task not found")
			return
		}
		h.Log.Error("tasks update: lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	if err := h.Tasks.UpdateFields(ctx, id, upd); err != nil {
		envelope.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("tasks update: reload failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	envelope.OK(w, http.StatusOK, updated, "task updated")
}

// HandleDelete handles DELETE /api/tasks/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Tasks.Delete(ctx, id)
	if err != nil {
		h.Log.Error("tasks delete: failed", zap.String("id", id.Hex()), zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to delete task")
		return
	}
	if deleted == 0 {
		envelope.Fail(w, http.StatusNotFound, "task not found")
		return
	}

	envelope.OK(w, http.StatusOK, nil, "task deleted")
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
