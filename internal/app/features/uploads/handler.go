// internal/app/features/uploads/handler.go

// Package uploads implements file uploads (module logos, product
// assets) against the configured storage backend.
package uploads

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

type Handler struct {
	Storage storage.Store
	// urlPrefix is where the file server publishes stored paths, e.g. "/files".
	urlPrefix string
	Log       *zap.Logger
}

func NewHandler(store storage.Store, urlPrefix string, logger *zap.Logger) *Handler {
	return &Handler{
		Storage:   store,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		Log:       logger,
	}
}

// UploadInfo is the response payload for a stored file. FileName is
// the name the operator picked; StoredName is the unique name the file
// lives under (also the last segment of Path).
type UploadInfo struct {
	Path        string `json:"path"`
	FileName    string `json:"file_name"`
	StoredName  string `json:"stored_name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	URL         string `json:"url,omitempty"`
}
