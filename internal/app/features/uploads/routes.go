// internal/app/features/uploads/routes.go
package uploads

import (
	sysauth "github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the upload routes (typically under "/api/upload").
// Serving is public (logos render on unauthenticated catalog pages);
// only admins and super-admins upload or delete files.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/*", h.HandleServe)

	r.Group(func(ar chi.Router) {
		ar.Use(sysauth.RequireSignedIn)
		ar.Use(sysauth.RequireRole("super-admin", "admin"))

		ar.Post("/", h.HandleUpload)
		ar.Delete("/*", h.HandleDelete)
	})

	return r
}
