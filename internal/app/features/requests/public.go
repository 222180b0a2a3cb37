package requests

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/inputval"
	"github.com/gashatech/adminhub/internal/app/system/limits"
	"github.com/gashatech/adminhub/internal/app/system/ratelimit"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type publicRequest struct {
	ProductID string `json:"product_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Platform  string `json:"platform"`
}

// HandlePublicSubmit handles POST /api/public/requests, the
// unauthenticated endpoint the product catalog posts to. The product
// must exist and have requests enabled; client IP and user agent are
// captured for review.
func (h *Handler) HandlePublicSubmit(w http.ResponseWriter, r *http.Request) {
	var req publicRequest
	if !envelope.Decode(w, r, limits.MaxJSONBodySize, &req) {
		return
	}

	if !inputval.IsValidEmail(req.Email) {
		envelope.Fail(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ProductID))
	if err != nil {
		envelope.Fail(w, http.StatusBadRequest, "invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	product, err := h.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusNotFound, "product not found")
			return
		}
		h.Log.Error("public request: product lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to submit request")
		return
	}
	if !product.RequestEnabled {
		envelope.Fail(w, http.StatusForbidden, "requests are not enabled for this product")
		return
	}

	created, err := h.Requests.Create(ctx, models.DownloadRequest{
		ProductID:   &product.ID,
		ProductName: product.Name,
		Module:      product.Module,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       strings.TrimSpace(req.Phone),
		Company:     strings.TrimSpace(req.Company),
		Platform:    strings.ToLower(strings.TrimSpace(req.Platform)),
		ClientIP:    ratelimit.ClientIP(r),
		UserAgent:   r.UserAgent(),
	})
	if err != nil {
		envelope.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Metrics.Record(ctx, models.Metric{
		Name:   metricRequests,
		Value:  1,
		Module: product.Module,
	}); err != nil {
		h.Log.Warn("public request: metric record failed", zap.String("id", created.ID.Hex()))
	}

	h.Log.Info("public request submitted",
		zap.String("product", product.Name),
		zap.String("module", product.Module),
	)
	envelope.OK(w, http.StatusCreated, created, "request submitted")
}
