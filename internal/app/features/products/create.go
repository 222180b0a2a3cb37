package products

import (
	"context"
	"errors"
	"net/http"

	productstore "github.com/gashatech/adminhub/internal/app/store/products"
	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/limits"
	"github.com/gashatech/adminhub/internal/app/system/normalize"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createRequest struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	Features        []string `json:"features"`
	Module          string   `json:"module"`
	DownloadEnabled bool     `json:"download_enabled"`
	RequestEnabled  bool     `json:"request_enabled"`
	CatalogVisible  bool     `json:"catalog_visible"`
	Status          string   `json:"status"`
}

// HandleCreate handles POST /api/products. The owning module must exist;
// a dangling module slug would make the product unreachable in the
// console.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !envelope.Decode(w, r, limits.MaxJSONBodySize, &req) {
		return
	}
	if req.Name == "" {
		envelope.Fail(w, http.StatusBadRequest, "product name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	slug := normalize.Slug(req.Module)
	exists, err := h.Modules.SlugExists(ctx, slug)
	if err != nil {
		h.Log.Error("products create: module check failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	if !exists {
		envelope.Fail(w, http.StatusBadRequest, "module does not exist")
		return
	}

	dup, err := h.Products.NameExistsInModule(ctx, slug, req.Name, primitive.NilObjectID)
	if err != nil {
		h.Log.Error("products create: duplicate check failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	if dup {
		envelope.Fail(w, http.StatusConflict, productstore.ErrDuplicateProduct.Error())
		return
	}

	created, err := h.Products.Create(ctx, models.Product{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		Features:        req.Features,
		Module:          slug,
		DownloadEnabled: req.DownloadEnabled,
		RequestEnabled:  req.RequestEnabled,
		CatalogVisible:  req.CatalogVisible,
		Status:          req.Status,
	})
	if err != nil {
		if errors.Is(err, productstore.ErrDuplicateProduct) {
			envelope.Fail(w, http.StatusConflict, err.Error())
			return
		}
		envelope.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Log.Info("product created",
		zap.String("name", created.Name),
		zap.String("module", created.Module),
	)
	envelope.OK(w, http.StatusCreated, created, "product created")
}
