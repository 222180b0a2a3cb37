// internal/app/features/analytics/routes.go
package analytics

import (
	sysauth "github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the analytics routes (typically under "/api/analytics").
// All of them require a signed-in operator; recording is open to every
// role so module dashboards can count their own events.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(sysauth.RequireSignedIn)

	r.Get("/", h.HandleList)
	r.Get("/summary", h.HandleSummary)
	r.Post("/", h.HandleRecord)

	return r
}
