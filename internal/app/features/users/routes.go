// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts user endpoints. /me/* is open to any signed-in account;
// the rest is admin-only.
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireToken)

	r.Get("/me/roles", h.ServeMyRoles)
	r.Get("/me/permissions", h.ServeMyPermissions)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireAdmin)
		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}", h.ServeGet)
		pr.Put("/{id}/status", h.HandleSetStatus)
	})

	return r
}
