// internal/console/forms/logo.go
package forms

import (
	"errors"
	"io"
	"strings"
)

// MaxLogoSize is the logo upload ceiling, matching the server's limit.
const MaxLogoSize = 5 << 20

// LogoFile is a picked logo image awaiting upload.
type LogoFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Validate rejects non-images and oversized files. A file that fails
// here never causes an upload request.
func (f *LogoFile) Validate() error {
	if !strings.HasPrefix(f.ContentType, "image/") {
		return errors.New("logo must be an image")
	}
	if f.Size > MaxLogoSize {
		return errors.New("logo must be 5 MB or smaller")
	}
	return nil
}
