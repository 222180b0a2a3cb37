// internal/app/features/content/routes.go
package content

import (
	sysauth "github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the blog/news routes (typically under "/api/content").
// Marketing writes content alongside admins.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(sysauth.RequireSignedIn)

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(pr chi.Router) {
		pr.Use(sysauth.RequireRole("super-admin", "admin", "marketing"))
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
