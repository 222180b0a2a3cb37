package uploads

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/gashatech/adminhub/internal/app/system/limits"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleUpload handles POST /api/upload. Expects a multipart form with
// a "file" part; "kind=logo" applies the stricter logo rules (image
// content type, 5 MB cap).
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(limits.MaxMultipartMemory); err != nil {
		envelope.Fail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		envelope.Fail(w, http.StatusBadRequest, `multipart form must include a "file" part`)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	kind := strings.ToLower(strings.TrimSpace(r.FormValue("kind")))

	if kind == "logo" {
		if !strings.HasPrefix(contentType, "image/") {
			envelope.Fail(w, http.StatusBadRequest, "logo must be an image")
			return
		}
		if header.Size > limits.MaxLogoSize {
			envelope.Fail(w, http.StatusBadRequest, "logo must be 5 MB or smaller")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	info, err := h.store(ctx, kind, header.Filename, file, header.Size, contentType)
	if err != nil {
		h.Log.Error("upload failed", zap.String("file", header.Filename), zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	h.Log.Info("file uploaded",
		zap.String("path", info.Path),
		zap.Int64("size", info.Size),
	)
	envelope.OK(w, http.StatusCreated, info, "file uploaded")
}

// store writes the file under a unique date-partitioned path:
// uploads/<kind>/YYYY/MM/uuid-filename.
func (h *Handler) store(ctx context.Context, kind, filename string, file io.Reader, size int64, contentType string) (UploadInfo, error) {
	if kind == "" {
		kind = "files"
	}

	now := time.Now().UTC()
	dateDir := fmt.Sprintf("uploads/%s/%04d/%02d", kind, now.Year(), now.Month())
	uniqueName := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(filename))
	path := filepath.ToSlash(filepath.Join(dateDir, uniqueName))

	opts := &storage.PutOptions{ContentType: contentType}
	if err := h.Storage.Put(ctx, path, file, opts); err != nil {
		return UploadInfo{}, fmt.Errorf("store %s: %w", path, err)
	}

	info := UploadInfo{
		Path:        path,
		FileName:    filename,
		StoredName:  uniqueName,
		Size:        size,
		ContentType: contentType,
	}
	if h.urlPrefix != "" {
		info.URL = h.urlPrefix + "/" + path
	}
	return info, nil
}

// HandleDelete handles DELETE /api/upload/*, removing a previously
// uploaded file by its storage path.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if path == "" || strings.Contains(path, "..") {
		envelope.Fail(w, http.StatusBadRequest, "invalid path")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Storage.Delete(ctx, path); err != nil {
		h.Log.Error("upload delete failed", zap.String("path", path), zap.Error(err))
		envelope.Fail(w, http.StatusInternalServerError, "failed to delete file")
		return
	}

	envelope.OK(w, http.StatusOK, nil, "file deleted")
}

// sanitizeFilename strips path components and replaces characters that
// are awkward in storage keys.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}

	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
