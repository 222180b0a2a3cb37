// internal/app/features/notifications/routes.go
package notifications

import (
	sysauth "github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the notification routes (typically under
// "/api/notifications"). Creating notifications requires admin or
// super-admin; reading and acknowledging are open to every operator.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(sysauth.RequireSignedIn)

	r.Get("/", h.HandleFeed)
	r.Post("/{id}/read", h.HandleMarkRead)

	r.Group(func(pr chi.Router) {
		pr.Use(sysauth.RequireRole("super-admin", "admin"))
		pr.Post("/", h.HandleCreate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
