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
	"go.uber.org/zap"
)

type createRequest struct {
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	LogoPath    string `json:"logo_path"`
	Status      string `json:"status"`
}

// HandleCreate handles POST /api/modules. The slug is derived from the
// display name by the store; callers cannot pick their own.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !envelope.Decode(w, r, limits.MaxJSONBodySize, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Modules.Create(ctx, models.Module{
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

	h.Log.Info("module created",
		zap.String("name", created.Name),
		zap.String("display_name", created.DisplayName),
	)
	envelope.OK(w, http.StatusCreated, toRow(created), "module created")
}
