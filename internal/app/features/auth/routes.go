// internal/app/features/auth/routes.go
package auth

import (
	sysauth "github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the auth endpoints (typically under "/api/auth").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.HandleLogin)
	r.Post("/google", h.HandleGoogle)

	r.Group(func(pr chi.Router) {
		pr.Use(sysauth.RequireSignedIn)
		pr.Get("/me", h.HandleMe)
	})

	return r
}
