// internal/app/features/uploads/serve.go
package uploads

import (
	"net/http"
	"strings"
	"time"

	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleServe handles GET /api/upload/*, serving a stored file by its
// storage path. Local storage serves the file directly; other backends
// redirect to a short-lived signed URL.
func (h *Handler) HandleServe(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if path == "" || strings.Contains(path, "..") {
		envelope.Fail(w, http.StatusBadRequest, "invalid path")
		return
	}

	if local, ok := h.Storage.(*storage.Local); ok {
		fullPath, err := local.GetFullPath(path)
		if err != nil {
			envelope.Fail(w, http.StatusNotFound, "file not found")
			return
		}
		http.ServeFile(w, r, fullPath)
		return
	}

	signedURL, err := h.Storage.PresignedURL(r.Context(), path, &storage.PresignOptions{
		Expires: 15 * time.Minute,
	})
	if err != nil {
		h.Log.Error("upload serve: presign failed", zap.String("path", path), zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to serve file")
		return
	}
	http.Redirect(w, r, signedURL, http.StatusSeeOther)
}
