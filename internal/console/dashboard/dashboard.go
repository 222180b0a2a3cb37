// internal/console/dashboard/dashboard.go

// Package dashboard is the console's state container. The Controller
// owns every entity list the operator sees, mutates that state only
// through typed apply steps, and talks to the backend exclusively
// through the services package. It is presentation-agnostic: alerts
// and confirmations go through injected capabilities, so the same
// controller drives a terminal, a test, or any future surface.
package dashboard

import (
	"sync"

	"github.com/gashatech/adminhub/internal/console/api"
	"github.com/gashatech/adminhub/internal/console/services"
	"go.uber.org/zap"
)

// Notifier is how the controller reports outcomes to the operator.
type Notifier interface {
	Info(msg string)
	Alert(msg string)
}

// Confirmer is how the controller asks before a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type nopNotifier struct{}

func (nopNotifier) Info(string)  {}
func (nopNotifier) Alert(string) {}

// approveAll is the default confirmation surface for scripted callers
// that wire none; interactive surfaces must inject their own.
type approveAll struct{}

func (approveAll) Confirm(string) bool { return true }

// Services bundles the resource services the controller drives.
type Services struct {
	Modules  *services.Modules
	Products *services.Products
	Users    *services.Users
	Stats    *services.Stats
	Upload   *services.Upload
}

// NewServices wires the full service set over one API client.
func NewServices(client *api.Client) Services {
	return Services{
		Modules:  services.NewModules(client),
		Products: services.NewProducts(client),
		Users:    services.NewUsers(client),
		Stats:    services.NewStats(client),
		Upload:   services.NewUpload(client),
	}
}

type Controller struct {
	svc       Services
	notifier  Notifier
	confirmer Confirmer
	log       *zap.Logger

	mu sync.Mutex

	modules   ListState[services.Module]
	users     ListState[services.User]
	products  ListState[services.Product]
	requests  ListState[services.Request]
	downloads ListState[services.Metric]

	// selectedModule scopes the products list; "" means no module is
	// open in the manage-products view.
	selectedModule string

	derived DerivedStats

	// tokens holds the latest issued fetch token per list. A response
	// whose token is no longer the latest is stale and dropped.
	tokens map[listKey]uint64
}

// New builds a controller. A nil notifier or confirmer falls back to
// the silent/approving defaults.
func New(svc Services, notifier Notifier, confirmer Confirmer, logger *zap.Logger) *Controller {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if confirmer == nil {
		confirmer = approveAll{}
	}
	return &Controller{
		svc:       svc,
		notifier:  notifier,
		confirmer: confirmer,
		log:       logger,
		tokens:    make(map[listKey]uint64),
	}
}

// Snapshot accessors. The returned Items slices are shared with the
// controller; callers must treat them as read-only.

func (c *Controller) Modules() ListState[services.Module] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modules
}

func (c *Controller) Users() ListState[services.User] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.users
}

func (c *Controller) Products() ListState[services.Product] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products
}

func (c *Controller) Requests() ListState[services.Request] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requests
}

func (c *Controller) Downloads() ListState[services.Metric] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.downloads
}

func (c *Controller) SelectedModule() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedModule
}

func (c *Controller) Stats() DerivedStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.derived
}
