package requests

import (
	"context"
	"errors"
	"net/http"

	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/limits"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type statusRequest struct {
	Status string `json:"status"`
}

// HandleSetStatus handles PUT /api/requests/{id}/status, moving a
// request between pending, completed, and rejected.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if !envelope.Decode(w, r, limits.MaxJSONBodySize, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Requests.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusNotFound, "request not found")
			return
		}
		h.Log.Error("requests set-status: lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to update request")
		return
	}

	if err := h.Requests.SetStatus(ctx, id, req.Status); err != nil {
		envelope.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("requests set-status: reload failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to update request")
		return
	}

	h.Log.Info("request status changed",
		zap.String("id", id.Hex()),
		zap.String("status", updated.Status),
	)
	envelope.OK(w, http.StatusOK, updated, "request updated")
}

// HandleDownload handles POST /api/requests/{id}/download. Releasing a
// download requires the request to be completed first; each release
// bumps the request's counter and appends a downloads metric.
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	req, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusNotFound, "request not found")
			return
		}
		h.Log.Error("requests download: lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to record download")
		return
	}

	if req.Status != models.RequestCompleted {
		envelope.Fail(w, http.StatusConflict, "request must be completed before downloading")
		return
	}

	if err := h.Requests.RecordDownload(ctx, id); err != nil {
		h.Log.Error("requests download: counter update failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to record download")
		return
	}

	if _, err := h.Metrics.Record(ctx, models.Metric{
		Name:   metricDownloads,
		Value:  1,
		Module: req.Module,
	}); err != nil {
		// The download already counted; a lost sample is not worth a 500.
		h.Log.Warn("requests download: metric record failed", zap.String("id", id.Hex()))
	}

	updated, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("requests download: reload failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to record download")
		return
	}

	envelope.OK(w, http.StatusOK, updated, "download recorded")
}

// HandleDelete handles DELETE /api/requests/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Requests.Delete(ctx, id)
	if err != nil {
		h.Log.Error("requests delete: failed", zap.String("id", id.Hex()), zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to delete request")
		return
	}
	if deleted == 0 {
		envelope.Fail(w, http.StatusNotFound, "request not found")
		return
	}

	envelope.OK(w, http.StatusOK, nil, "request deleted")
}
