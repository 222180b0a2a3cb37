// internal/console/dashboard/actions.go
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gashatech/adminhub/internal/console/services"
	"go.uber.org/zap"
)

// Action names one mutating operation the controller performs.
type Action string

const (
	ActionCreateModule Action = "create-module"
	ActionUpdateModule Action = "update-module"
	ActionDeleteModule Action = "delete-module"

	ActionCreateAdmin      Action = "create-admin"
	ActionUpdateUser       Action = "update-user"
	ActionSetUserModules   Action = "set-user-modules"
	ActionToggleUserStatus Action = "toggle-user-status"
	ActionDeleteUser       Action = "delete-user"

	ActionCreateProduct Action = "create-product"
	ActionUpdateProduct Action = "update-product"
	ActionDeleteProduct Action = "delete-product"
)

// Policy says how the cached list is reconciled after a successful
// mutation.
type Policy string

const (
	// PolicyRefetch replaces the list wholesale with a fresh fetch.
	PolicyRefetch Policy = "refetch"
	// PolicyLocalMerge patches the one changed row in place; the next
	// refresh reconciles anything else.
	PolicyLocalMerge Policy = "local-merge"
)

// cachePolicy is the per-action reconciliation table. The status
// toggle is the single local merge: flipping one field on one row is
// frequent enough during operator review that the full refetch is not
// worth it, and the merged value cannot drift because the server
// returns the row it stored. Everything else pays the refetch.
var cachePolicy = map[Action]Policy{
	ActionCreateModule: PolicyRefetch,
	ActionUpdateModule: PolicyRefetch,
	ActionDeleteModule: PolicyRefetch,

	ActionCreateAdmin:      PolicyRefetch,
	ActionUpdateUser:       PolicyRefetch,
	ActionSetUserModules:   PolicyRefetch,
	ActionToggleUserStatus: PolicyLocalMerge,
	ActionDeleteUser:       PolicyRefetch,

	ActionCreateProduct: PolicyRefetch,
	ActionUpdateProduct: PolicyRefetch,
	ActionDeleteProduct: PolicyRefetch,
}

// fail logs a mutation failure, alerts the operator, and hands the
// message back to the caller (forms display it inline and stay open).
func (c *Controller) fail(action Action, msg string) error {
	c.log.Warn("action failed", zap.String("action", string(action)), zap.String("error", msg))
	c.notifier.Alert(msg)
	return errors.New(msg)
}

// settle reconciles list state after a successful mutation, per the
// policy table. Local-merge actions do their own patching at the call
// site.
func (c *Controller) settle(ctx context.Context, action Action) {
	if cachePolicy[action] != PolicyRefetch {
		return
	}
	switch action {
	case ActionCreateModule, ActionUpdateModule, ActionDeleteModule:
		c.RefreshModules(ctx)
		// Module changes move requests and download counts between
		// buckets, so the stat sources reload too.
		c.refreshStats(ctx)
	case ActionCreateAdmin, ActionUpdateUser, ActionSetUserModules, ActionDeleteUser:
		c.RefreshUsers(ctx)
	case ActionCreateProduct, ActionUpdateProduct, ActionDeleteProduct:
		c.RefreshProducts(ctx)
	}
}

// CreateModule creates a module and refetches the module list.
func (c *Controller) CreateModule(ctx context.Context, in services.ModuleInput) error {
	res := c.svc.Modules.Create(ctx, in)
	if !res.Success {
		return c.fail(ActionCreateModule, res.Error)
	}
	c.notifier.Info(fmt.Sprintf("module %q created", res.Module.DisplayName))
	c.settle(ctx, ActionCreateModule)
	return nil
}

func (c *Controller) UpdateModule(ctx context.Context, id string, in services.ModuleInput) error {
	res := c.svc.Modules.Update(ctx, id, in)
	if !res.Success {
		return c.fail(ActionUpdateModule, res.Error)
	}
	c.settle(ctx, ActionUpdateModule)
	return nil
}

// DeleteModule asks for confirmation, then deletes. The backend
// cascades into products and user assignments, so the user list
// refetches as well.
func (c *Controller) DeleteModule(ctx context.Context, id string) error {
	name := id
	c.mu.Lock()
	for _, m := range c.modules.Items {
		if m.ID == id {
			name = m.DisplayName
			break
		}
	}
	c.mu.Unlock()

	if !c.confirmer.Confirm(fmt.Sprintf("Delete module %q? Its products will be removed and its admins unassigned.", name)) {
		return nil
	}

	res := c.svc.Modules.Delete(ctx, id)
	if !res.Success {
		return c.fail(ActionDeleteModule, res.Error)
	}
	c.notifier.Info(fmt.Sprintf("module %q deleted", name))
	c.settle(ctx, ActionDeleteModule)
	c.RefreshUsers(ctx)
	return nil
}

// CreateAdmin creates an operator account and refetches the user list.
// Module membership is validated by the form before this is called.
func (c *Controller) CreateAdmin(ctx context.Context, in services.UserInput) error {
	res := c.svc.Users.Create(ctx, in)
	if !res.Success {
		return c.fail(ActionCreateAdmin, res.Error)
	}
	c.notifier.Info(fmt.Sprintf("admin %q created", res.User.FullName))
	c.settle(ctx, ActionCreateAdmin)
	return nil
}

func (c *Controller) UpdateUser(ctx context.Context, id string, in services.UserUpdate) error {
	res := c.svc.Users.Update(ctx, id, in)
	if !res.Success {
		return c.fail(ActionUpdateUser, res.Error)
	}
	c.settle(ctx, ActionUpdateUser)
	return nil
}

func (c *Controller) SetUserModules(ctx context.Context, id string, modules []string) error {
	res := c.svc.Users.SetModules(ctx, id, modules)
	if !res.Success {
		return c.fail(ActionSetUserModules, res.Error)
	}
	c.settle(ctx, ActionSetUserModules)
	return nil
}

// ToggleUserStatus flips a user between active and inactive. On
// success the stored row is merged into local state without a refetch
// (see cachePolicy); on failure the list is untouched.
func (c *Controller) ToggleUserStatus(ctx context.Context, id string) error {
	c.mu.Lock()
	next := ""
	for _, u := range c.users.Items {
		if u.ID == id {
			if u.Status == "active" {
				next = "inactive"
			} else {
				next = "active"
			}
			break
		}
	}
	c.mu.Unlock()
	if next == "" {
		return c.fail(ActionToggleUserStatus, "user is not in the loaded list")
	}

	res := c.svc.Users.SetStatus(ctx, id, next)
	if !res.Success {
		return c.fail(ActionToggleUserStatus, res.Error)
	}

	c.mu.Lock()
	for i := range c.users.Items {
		if c.users.Items[i].ID == id {
			c.users.Items[i] = res.User
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// DeleteUser asks for confirmation, then deletes and refetches.
func (c *Controller) DeleteUser(ctx context.Context, id string) error {
	name := id
	c.mu.Lock()
	for _, u := range c.users.Items {
		if u.ID == id {
			name = u.FullName
			break
		}
	}
	c.mu.Unlock()

	if !c.confirmer.Confirm(fmt.Sprintf("Delete user %q?", name)) {
		return nil
	}

	res := c.svc.Users.Delete(ctx, id)
	if !res.Success {
		return c.fail(ActionDeleteUser, res.Error)
	}
	c.notifier.Info(fmt.Sprintf("user %q deleted", name))
	c.settle(ctx, ActionDeleteUser)
	return nil
}

// CreateProduct adds a product to the selected module.
func (c *Controller) CreateProduct(ctx context.Context, in services.ProductInput) error {
	res := c.svc.Products.Create(ctx, in)
	if !res.Success {
		return c.fail(ActionCreateProduct, res.Error)
	}
	c.settle(ctx, ActionCreateProduct)
	return nil
}

func (c *Controller) UpdateProduct(ctx context.Context, id string, in services.ProductUpdate) error {
	res := c.svc.Products.Update(ctx, id, in)
	if !res.Success {
		return c.fail(ActionUpdateProduct, res.Error)
	}
	c.settle(ctx, ActionUpdateProduct)
	return nil
}

// DeleteProduct asks for confirmation, then deletes and refetches the
// selected module's products.
func (c *Controller) DeleteProduct(ctx context.Context, id string) error {
	name := id
	c.mu.Lock()
	for _, p := range c.products.Items {
		if p.ID == id {
			name = p.Name
			break
		}
	}
	c.mu.Unlock()

	if !c.confirmer.Confirm(fmt.Sprintf("Delete product %q?", name)) {
		return nil
	}

	res := c.svc.Products.Delete(ctx, id)
	if !res.Success {
		return c.fail(ActionDeleteProduct, res.Error)
	}
	c.settle(ctx, ActionDeleteProduct)
	return nil
}

// UploadLogo pushes a pre-validated logo file to the server and
// returns its stored path for the module form to reference.
func (c *Controller) UploadLogo(ctx context.Context, filename string, file io.Reader) (string, error) {
	res := c.svc.Upload.Logo(ctx, filename, file)
	if !res.Success {
		c.log.Warn("logo upload failed", zap.String("file", filename), zap.String("error", res.Error))
		c.notifier.Alert(res.Error)
		return "", errors.New(res.Error)
	}
	return res.File.Path, nil
}
