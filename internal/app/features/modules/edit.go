package modules

import (
	"context"
	"errors"
	"net/http"

	modulestore "github.com/gashatech/adminhub/internal/app/store/modules"
	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/limits"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"github.com/gashatech/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type updateRequest struct {
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	LogoPath    string `json:"logo_path"`
	Status      string `json:"status"`
}

// HandleUpdate handles PUT /api/modules/{id}. Renaming a module
// re-derives its slug; products and user assignments keep referencing
// the old slug, so the handler rewrites those references too.
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

	before, err := h.Modules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusNotFound, "module not found")
			return
		}
		h.Log.Error("modules update: lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to update module")
		return
	}

	err = h.Modules.Update(ctx, id, models.Module{
		DisplayName: req.DisplayName,
		Description: req.Description,
		LogoPath:    req.LogoPath,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, modulestore.ErrDuplicateModule) {
			envelope.Fail(w, http.StatusConflict, err.Error())
			return
		}
		envelope.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	after, err := h.Modules.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("modules update: reload failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to update module")
		return
	}

	if before.Name != after.Name {
		if err := h.renameReferences(ctx, before.Name, after.Name); err != nil {
			h.Log.Error("modules update: reference rewrite failed",
				zap.String("from", before.Name),
				zap.String("to", after.Name),
				zap.Error(err),
			)
			envelope.Fail(w, http.StatusInternalServerError, "failed to update module")
			return
		}
	}

	envelope.OK(w, http.StatusOK, toRow(after), "module updated")
}

// renameReferences rewrites the module slug in products and user
// assignments after a rename.
func (h *Handler) renameReferences(ctx context.Context, from, to string) error {
	if err := h.Products.RenameModule(ctx, from, to); err != nil {
		return err
	}
	return h.Users.RenameModule(ctx, from, to)
}

// HandleDelete handles DELETE /api/modules/{id}. Deletion cascades: the
// module's products are removed and the module is stripped from every
// user's assignment list.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	mod, err := h.Modules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			envelope.Fail(w, http.StatusNotFound, "module not found")
			return
		}
		h.Log.Error("modules delete: lookup failed", zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to delete module")
		return
	}

	deleted, err := h.Modules.Delete(ctx, id)
	if err != nil {
		h.Log.Error("modules delete: failed", zap.String("name", mod.Name), zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to delete module")
		return
	}
	if deleted == 0 {
		envelope.Fail(w, http.StatusNotFound, "module not found")
		return
	}

	products, err := h.Products.DeleteByModule(ctx, mod.Name)
	if err != nil {
		h.Log.Error("modules delete: product cascade failed", zap.String("name", mod.Name), zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "module deleted but product cleanup failed")
		return
	}

	users, err := h.Users.RemoveModuleFromAll(ctx, mod.Name)
	if err != nil {
		h.Log.Error("modules delete: user cascade failed", zap.String("name", mod.Name), zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "module deleted but user cleanup failed")
		return
	}

	h.Log.Info("module deleted",
		zap.String("name", mod.Name),
		zap.Int64("products_removed", products),
		zap.Int64("users_unassigned", users),
	)
	envelope.OK(w, http.StatusOK, nil, "module deleted")
}
