// internal/app/features/users/routes.go
package users

import (
	sysauth "github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all user-management routes (typically under "/api/users").
//
// Reads are open to any signed-in operator; writes require admin or
// super-admin; deletion is super-admin only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(sysauth.RequireSignedIn)

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(pr chi.Router) {
		pr.Use(sysauth.RequireRole("super-admin", "admin"))
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Put("/{id}/modules", h.HandleSetModules)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sysauth.RequireRole("super-admin"))
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
