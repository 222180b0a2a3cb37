// internal/console/services/upload.go
package services

import (
	"context"
	"io"
	"net/http"

	"github.com/gashatech/adminhub/internal/console/api"
)

// Upload wraps the /api/upload endpoints.
type Upload struct {
	api *api.Client
}

func NewUpload(client *api.Client) *Upload {
	return &Upload{api: client}
}

type UploadResult struct {
	Result
	File UploadInfo
}

// Logo uploads a module logo image. The server enforces the image
// content-type and size rules again; forms pre-validate so a bad pick
// never reaches the network.
func (s *Upload) Logo(ctx context.Context, filename string, file io.Reader) UploadResult {
	env := s.api.Upload(ctx, "/api/upload", "file", filename, file,
		map[string]string{"kind": "logo"})

	var info UploadInfo
	if res := decodeInto(env, &info); !res.Success {
		return UploadResult{Result: res}
	}
	return UploadResult{Result: okResult(), File: info}
}

// Delete removes a previously uploaded file by its storage path.
func (s *Upload) Delete(ctx context.Context, path string) Result {
	if path == "" {
		return failResult("path is required")
	}
	return resultOf(s.api.Do(ctx, http.MethodDelete, "/api/upload/"+path, nil))
}
