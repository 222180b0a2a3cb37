// internal/console/forms/products.go
package forms

import (
	"context"
	"errors"
	"strings"

	"github.com/gashatech/adminhub/internal/console/services"
)

// ProductCreator is the single controller callback a product submit
// calls.
type ProductCreator func(ctx context.Context, in services.ProductInput) error

// ProductsForm is the manage-products modal: it stays scoped to the
// one module it was opened for, and its draft resets after each
// successful add so the operator can enter the next product.
type ProductsForm struct {
	Module string // owning module slug, fixed when the modal opens

	Draft ProductDraft
	Err   string
}

type ProductDraft struct {
	Name        string
	Category    string
	Description string
	Features    []string

	DownloadEnabled bool
	RequestEnabled  bool
	CatalogVisible  bool

	Status string
}

func NewProductsForm(module string) *ProductsForm {
	return &ProductsForm{Module: module}
}

func (f *ProductsForm) Validate() error {
	if f.Module == "" {
		return errors.New("no module selected")
	}
	if strings.TrimSpace(f.Draft.Name) == "" {
		return errors.New("product name is required")
	}
	if len(strings.TrimSpace(f.Draft.Name)) > maxNameLength {
		return errors.New("product name is too long")
	}
	if !validCategories[f.Draft.Category] {
		return errors.New("unknown category")
	}
	if f.Draft.Status != "" && !validStatuses[f.Draft.Status] {
		return errors.New("status must be active, inactive, or maintenance")
	}
	return nil
}

// Submit validates the draft and calls create once. On success the
// draft resets for the next entry; the modal itself stays open.
func (f *ProductsForm) Submit(ctx context.Context, create ProductCreator) bool {
	if err := f.Validate(); err != nil {
		f.Err = err.Error()
		return false
	}

	if err := create(ctx, services.ProductInput{
		Name:            strings.TrimSpace(f.Draft.Name),
		Category:        f.Draft.Category,
		Description:     strings.TrimSpace(f.Draft.Description),
		Features:        f.Draft.Features,
		Module:          f.Module,
		DownloadEnabled: f.Draft.DownloadEnabled,
		RequestEnabled:  f.Draft.RequestEnabled,
		CatalogVisible:  f.Draft.CatalogVisible,
		Status:          f.Draft.Status,
	}); err != nil {
		f.Err = err.Error()
		return false
	}

	f.Draft = ProductDraft{}
	f.Err = ""
	return true
}
