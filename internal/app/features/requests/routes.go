// internal/app/features/requests/routes.go
package requests

import (
	"time"

	sysauth "github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/gashatech/adminhub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the operator-facing request-review routes (typically
// under "/api/requests").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(sysauth.RequireSignedIn)

	r.Get("/", h.HandleList)
	r.Get("/summary", h.HandleSummary)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(pr chi.Router) {
		pr.Use(sysauth.RequireRole("super-admin", "admin"))
		pr.Put("/{id}/status", h.HandleSetStatus)
		pr.Post("/{id}/download", h.HandleDownload)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}

// PublicRoutes mounts the unauthenticated submission endpoint the
// product catalog posts to (typically under "/api/public/requests").
// Submissions are throttled per source IP since anyone can reach this.
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(ratelimit.Middleware(ratelimit.New(5, time.Minute)))
	r.Post("/", h.HandlePublicSubmit)
	return r
}
