package products

import (
	"context"
	"errors"
	"net/http"

	productstore "github.com/gashatech/adminhub/internal/app/store/products"
	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/limits"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type updateRequest struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	Features        []string `json:"features"`
	Status          string   `json:"status"`
	DownloadEnabled *bool    `json:"download_enabled"`
	RequestEnabled  *bool    `json:"request_enabled"`
	CatalogVisible  *bool    `json:"catalog_visible"`
}

// HandleUpdate handles PUT /api/products/{id}. The capability flags are
// pointers so an omitted flag keeps its stored value while an explicit
// false turns the capability off.
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

	existing, err := h.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusNotFound, "product not found")
			return
		}
		h.Log.Error("products update: lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	if req.Name != "" {
		dup, err := h.Products.NameExistsInModule(ctx, existing.Module, req.Name, id)
		if err != nil {
			h.Log.Error("products update: duplicate check failed", zap.Error(err))
			envelope.Fail(w, http.StatusInternalServerError, "failed to update product")
			return
		}
		if dup {
			envelope.Fail(w, http.StatusConflict, productstore.ErrDuplicateProduct.Error())
			return
		}
	}

	err = h.Products.UpdateFields(ctx, id, productstore.Update{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		Features:        req.Features,
		Status:          req.Status,
		DownloadEnabled: req.DownloadEnabled,
		RequestEnabled:  req.RequestEnabled,
		CatalogVisible:  req.CatalogVisible,
	})
	if err != nil {
		if errors.Is(err, productstore.ErrDuplicateProduct) {
			envelope.Fail(w, http.StatusConflict, err.Error())
			return
		}
		envelope.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Products.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("products update: reload failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	envelope.OK(w, http.StatusOK, updated, "product updated")
}

// HandleDelete handles DELETE /api/products/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Products.Delete(ctx, id)
	if err != nil {
		h.Log.Error("products delete: failed", zap.String("id", id.Hex()), zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	if deleted == 0 {
		envelope.Fail(w, http.StatusNotFound, "product not found")
		return
	}

	h.Log.Info("product deleted", zap.String("id", id.Hex()))
	envelope.OK(w, http.StatusOK, nil, "product deleted")
}
