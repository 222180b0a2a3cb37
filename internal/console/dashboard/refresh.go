// internal/console/dashboard/refresh.go
package dashboard

import (
	"context"

	"github.com/gashatech/adminhub/internal/console/services"
	"go.uber.org/zap"
)

// begin issues a fetch token for a list and marks it loading. Only the
// response carrying the latest token for its list is applied; anything
// older lost the race to a newer fetch and is dropped.
func (c *Controller) begin(key listKey, mark func()) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[key]++
	mark()
	return c.tokens[key]
}

// current reports whether token is still the latest for its list.
// Caller holds c.mu.
func (c *Controller) current(key listKey, token uint64) bool {
	if c.tokens[key] != token {
		c.log.Debug("dropping stale response",
			zap.String("list", string(key)),
			zap.Uint64("token", token),
		)
		return false
	}
	return true
}

// RefreshModules reloads the module list and the stats feeding off it.
func (c *Controller) RefreshModules(ctx context.Context) {
	token := c.begin(listModules, func() { markLoading(&c.modules) })
	list := c.svc.Modules.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(listModules, token) {
		return
	}
	if !list.Success {
		markErrored(&c.modules, list.Error)
		c.notifier.Alert("failed to load modules: " + list.Error)
		return
	}
	markLoaded(&c.modules, list.Modules)
	c.recomputeStats()
}

// RefreshUsers reloads the operator list.
func (c *Controller) RefreshUsers(ctx context.Context) {
	token := c.begin(listUsers, func() { markLoading(&c.users) })
	list := c.svc.Users.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(listUsers, token) {
		return
	}
	if !list.Success {
		markErrored(&c.users, list.Error)
		c.notifier.Alert("failed to load users: " + list.Error)
		return
	}
	markLoaded(&c.users, list.Users)
	c.recomputeStats()
}

// RefreshProducts reloads the products of the selected module. With no
// module selected it clears the list back to idle.
func (c *Controller) RefreshProducts(ctx context.Context) {
	c.mu.Lock()
	module := c.selectedModule
	c.mu.Unlock()

	if module == "" {
		c.mu.Lock()
		c.tokens[listProducts]++
		c.products = ListState[services.Product]{Phase: Idle, Items: nil}
		c.mu.Unlock()
		return
	}

	token := c.begin(listProducts, func() { markLoading(&c.products) })
	list := c.svc.Products.GetByModule(ctx, module)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(listProducts, token) {
		return
	}
	if !list.Success {
		markErrored(&c.products, list.Error)
		c.notifier.Alert("failed to load products: " + list.Error)
		return
	}
	markLoaded(&c.products, list.Products)
}

// RefreshRequests reloads the download-request list.
func (c *Controller) RefreshRequests(ctx context.Context) {
	token := c.begin(listRequests, func() { markLoading(&c.requests) })
	list := c.svc.Stats.Requests(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(listRequests, token) {
		return
	}
	if !list.Success {
		markErrored(&c.requests, list.Error)
		c.notifier.Alert("failed to load requests: " + list.Error)
		return
	}
	markLoaded(&c.requests, list.Requests)
	c.recomputeStats()
}

// RefreshDownloads reloads the recorded download samples.
func (c *Controller) RefreshDownloads(ctx context.Context) {
	token := c.begin(listDownloads, func() { markLoading(&c.downloads) })
	list := c.svc.Stats.Downloads(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(listDownloads, token) {
		return
	}
	if !list.Success {
		markErrored(&c.downloads, list.Error)
		c.notifier.Alert("failed to load downloads: " + list.Error)
		return
	}
	markLoaded(&c.downloads, list.Metrics)
	c.recomputeStats()
}

// refreshStats reloads the two lists the derived statistics aggregate
// over. Module and request mutations call this so the overview cards
// track the change.
func (c *Controller) refreshStats(ctx context.Context) {
	c.RefreshRequests(ctx)
	c.RefreshDownloads(ctx)
}

// RefreshAll loads everything; the console calls this once after
// sign-in.
func (c *Controller) RefreshAll(ctx context.Context) {
	c.RefreshModules(ctx)
	c.RefreshUsers(ctx)
	c.RefreshProducts(ctx)
	c.refreshStats(ctx)
}

// SelectModule scopes the manage-products view to one module slug and
// loads its products. An empty slug closes the view.
func (c *Controller) SelectModule(ctx context.Context, module string) {
	c.mu.Lock()
	c.selectedModule = module
	c.mu.Unlock()
	c.RefreshProducts(ctx)
}
