// internal/app/features/roles/routes.go
package roles

import (
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts role endpoints. Reading roles needs any signed-in account;
// changing them or their assignments is admin-only.
func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireToken)

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireAdmin)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Get("/{id}/members", h.ServeMembers)
		pr.Post("/{id}/assign", h.HandleAssign)
		pr.Delete("/{id}/users/{userId}", h.HandleUnassign)
	})

	return r
}
