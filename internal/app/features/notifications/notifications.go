package notifications

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	sysauth "github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/limits"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"github.com/gashatech/adminhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const defaultFeedLimit = 50

// HandleFeed handles GET /api/notifications, returning the signed-in
// operator's feed: their own notifications plus broadcasts.
func (h *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	current, ok := sysauth.CurrentUser(r)
	if !ok {
		envelope.Fail(w, http.StatusUnauthorized, "sign in required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(current.ID)
	if err != nil {
		envelope.Fail(w, http.StatusUnauthorized, "sign in required")
		return
	}

	limit := int64(defaultFeedLimit)
	if n, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && n > 0 {
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	notes, err := h.Notifications.ForUser(ctx, userID, limit)
	if err != nil {
		h.Log.Error("notifications feed: find failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to load notifications")
		return
	}

	if notes == nil {
		notes = []models.Notification{}
	}
	envelope.OK(w, http.StatusOK, feedPayload{Notifications: notes}, "")
}

type createRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Level  string `json:"level"`
	UserID string `json:"user_id"`
}

// HandleCreate handles POST /api/notifications. An empty user_id makes
// the notification a broadcast.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !envelope.Decode(w, r, limits.MaxJSONBodySize, &req) {
		return
	}

	note := models.Notification{
		Title: strings.TrimSpace(req.Title),
		Body:  req.Body,
		Level: strings.ToLower(strings.TrimSpace(req.Level)),
	}
	if req.UserID != "" {
		userID, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			envelope.Fail(w, http.StatusBadRequest, "invalid user id")
			return
		}
		note.UserID = &userID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Notifications.Create(ctx, note)
	if err != nil {
		envelope.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Log.Info("notification created",
		zap.String("title", created.Title),
		zap.String("level", created.Level),
		zap.Bool("broadcast", created.UserID == nil),
	)
	envelope.OK(w, http.StatusCreated, created, "notification created")
}

// HandleMarkRead handles POST /api/notifications/{id}/read.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, id); err != nil {
		h.Log.Error("notifications mark-read: failed", zap.String("id", id.Hex()), zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to mark notification read")
		return
	}

	envelope.OK(w, http.StatusOK, nil, "notification marked read")
}

// HandleDelete handles DELETE /api/notifications/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	deleted, err := h.Notifications.Delete(ctx, id)
	if err != nil {
		h.Log.Error("notifications delete: failed", zap.String("id", id.Hex()), zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to delete notification")
		return
	}
	if deleted == 0 {
		envelope.Fail(w, http.StatusNotFound, "notification not found")
		return
	}

	envelope.OK(w, http.StatusOK, nil, "notification deleted")
}

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		envelope.Fail(w, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
