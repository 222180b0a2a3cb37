// internal/app/features/modules/routes.go
package modules

import (
	sysauth "github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the module-management routes (typically under
// "/api/modules").
//
// Reads are open to any signed-in operator; creation and editing
// require admin or super-admin; deletion is super-admin only because it
// cascades into products and user assignments.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(sysauth.RequireSignedIn)

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(pr chi.Router) {
		pr.Use(sysauth.RequireRole("super-admin", "admin"))
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sysauth.RequireRole("super-admin"))
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
