// internal/console/forms/admin.go
package forms

import (
	"context"
	"errors"
	"strings"

	"github.com/gashatech/adminhub/internal/console/services"
)

// AdminCreator is the single controller callback an admin submit
// calls.
type AdminCreator func(ctx context.Context, in services.UserInput) error

// AdminForm is the create-admin modal's draft. AvailableModules is the
// slug list currently loaded in the dashboard; the form refuses a
// non-super-admin with no module to assign before anything reaches the
// network.
type AdminForm struct {
	FullName string
	Email    string
	Password string
	Role     string
	Modules  []string

	AvailableModules []string

	Err string
}

func (f *AdminForm) Validate() error {
	if strings.TrimSpace(f.FullName) == "" {
		return errors.New("full name is required")
	}
	email := strings.TrimSpace(f.Email)
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("a valid email is required")
	}
	if len(f.Password) < minPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	if !validRoles[f.Role] {
		return errors.New("unknown role")
	}

	if f.Role != "super-admin" && len(f.Modules) == 0 {
		if len(f.AvailableModules) == 0 {
			return errors.New("create a module before adding admins")
		}
		return errors.New("assign at least one module")
	}
	return nil
}

// Submit validates the draft and calls create once.
func (f *AdminForm) Submit(ctx context.Context, create AdminCreator) bool {
	if err := f.Validate(); err != nil {
		f.Err = err.Error()
		return false
	}

	modules := f.Modules
	if modules == nil {
		modules = []string{}
	}
	if err := create(ctx, services.UserInput{
		FullName: strings.TrimSpace(f.FullName),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
		Role:     f.Role,
		Modules:  modules,
		Status:   "active",
	}); err != nil {
		f.Err = err.Error()
		return false
	}

	f.Err = ""
	return true
}
