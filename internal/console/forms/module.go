// internal/console/forms/module.go
package forms

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/gashatech/adminhub/internal/console/services"
)

// LogoUploader pushes a validated logo to the server and returns its
// stored path. The dashboard controller's UploadLogo satisfies this.
type LogoUploader func(ctx context.Context, filename string, file io.Reader) (string, error)

// ModuleSaver is the single controller callback a module submit calls:
// CreateModule for a blank ID, UpdateModule otherwise.
type ModuleSaver func(ctx context.Context, in services.ModuleInput) error

// ModuleForm is the create/edit module modal's draft.
type ModuleForm struct {
	ID          string // empty when creating
	DisplayName string
	Description string
	Status      string
	LogoPath    string    // already-stored logo, kept unless replaced
	Logo        *LogoFile // newly picked logo awaiting upload

	Err string
}

// Slug is the internal name the backend will derive; shown live in the
// modal so the operator sees the final identifier before submitting.
func (f *ModuleForm) Slug() string {
	return Derive(f.DisplayName)
}

func (f *ModuleForm) Validate() error {
	name := strings.TrimSpace(f.DisplayName)
	if name == "" {
		return errors.New("display name is required")
	}
	if len(name) > maxNameLength {
		return errors.New("display name is too long")
	}
	if f.Status != "" && !validStatuses[f.Status] {
		return errors.New("status must be active, inactive, or maintenance")
	}
	if f.Logo != nil {
		return f.Logo.Validate()
	}
	return nil
}

// Submit validates, uploads a newly picked logo if any, then calls
// save once. A failed validation or upload means save is never called.
func (f *ModuleForm) Submit(ctx context.Context, upload LogoUploader, save ModuleSaver) bool {
	if err := f.Validate(); err != nil {
		f.Err = err.Error()
		return false
	}

	if f.Logo != nil {
		path, err := upload(ctx, f.Logo.Name, f.Logo.Content)
		if err != nil {
			f.Err = err.Error()
			return false
		}
		f.LogoPath = path
		f.Logo = nil
	}

	if err := save(ctx, services.ModuleInput{
		DisplayName: strings.TrimSpace(f.DisplayName),
		Description: strings.TrimSpace(f.Description),
		LogoPath:    f.LogoPath,
		Status:      f.Status,
	}); err != nil {
		f.Err = err.Error()
		return false
	}

	f.Err = ""
	return true
}
