package analytics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/limits"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type recordRequest struct {
	Name   string            `json:"name"`
	Value  float64           `json:"value"`
	Kind   string            `json:"kind"`
	Labels map[string]string `json:"labels"`
	Module string            `json:"module"`
}

// HandleRecord handles POST /api/analytics, appending a metric sample.
// A zero value counts as 1 so bare counter hits need no body beyond the
// name.
func (h *Handler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if !envelope.Decode(w, r, limits.MaxJSONBodySize, &req) {
		return
	}
	if req.Value == 0 {
		req.Value = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	recorded, err := h.Metrics.Record(ctx, models.Metric{
		Name:   strings.TrimSpace(req.Name),
		Value:  req.Value,
		Kind:   req.Kind,
		Labels: req.Labels,
		Module: strings.TrimSpace(req.Module),
	})
	if err != nil {
		envelope.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	envelope.OK(w, http.StatusCreated, recorded, "metric recorded")
}

// HandleList handles GET /api/analytics, returning raw samples filtered
// by name/module/kind, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	q := r.URL.Query()
	filter := bson.M{}

	if name := strings.TrimSpace(q.Get("name")); name != "" {
		filter["name"] = name
	}
	if module := strings.TrimSpace(q.Get("module")); module != "" {
		filter["module"] = module
	}
	if kind := strings.ToLower(strings.TrimSpace(q.Get("kind"))); kind != "" {
		filter["kind"] = kind
	}
	if since := strings.TrimSpace(q.Get("since")); since != "" {
		ts, err := time.Parse(time.RFC3339, since)
		if err != nil {
			envelope.Fail(w, http.StatusBadRequest, "since must be RFC 3339")
			return
		}
		filter["recorded_at"] = bson.M{"$gte": ts}
	}

	limit, offset := pageParams(q.Get("limit"), q.Get("offset"))

	total, err := h.Metrics.Count(ctx, filter)
	if err != nil {
		h.Log.Error("analytics list: count failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to list metrics")
		return
	}

	found, err := h.Metrics.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "recorded_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit))
	if err != nil {
		h.Log.Error("analytics list: find failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to list metrics")
		return
	}

	if found == nil {
		found = []models.Metric{}
	}
	envelope.OK(w, http.StatusOK, listPayload{Metrics: found, Total: total}, "")
}

// HandleSummary handles GET /api/analytics/summary. Everything the
// dashboard's landing page shows comes back in one response so the
// console needs a single round trip.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var (
		out summaryPayload
		err error
	)

	if out.Users, err = h.Users.Count(ctx, bson.M{}); err != nil {
		h.summaryError(w, "users count", err)
		return
	}
	if out.Modules, err = h.Modules.Count(ctx, bson.M{}); err != nil {
		h.summaryError(w, "modules count", err)
		return
	}
	if out.Products, err = h.Products.Count(ctx, bson.M{}); err != nil {
		h.summaryError(w, "products count", err)
		return
	}
	if out.Requests, err = h.Requests.CountByStatus(ctx); err != nil {
		h.summaryError(w, "requests count", err)
		return
	}
	if out.DownloadsByModule, err = h.Metrics.SumByModule(ctx, metricDownloads); err != nil {
		h.summaryError(w, "downloads sum", err)
		return
	}
	since := time.Now().UTC().AddDate(0, 0, -30)
	if out.VisitsLast30Days, err = h.Metrics.SumSince(ctx, metricVisits, since); err != nil {
		h.summaryError(w, "visits sum", err)
		return
	}

	envelope.OK(w, http.StatusOK, out, "")
}

func (h *Handler) summaryError(w http.ResponseWriter, step string, err error) {
	h.Log.Error("analytics summary failed", zap.String("step", step), zap.Error(err))
	envelope.Fail(w, http.StatusInternalServerError, "failed to build summary")
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
