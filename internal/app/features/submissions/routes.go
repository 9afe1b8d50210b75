// internal/app/features/submissions/routes.go
package submissions

import (
	"net/http"

	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the application endpoints. The public form is throttled
// by limit; everything else is admin-only.
func Routes(h *Handler, mw *auth.Middleware, limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		if limit != nil {
			pr.Use(limit)
		}
		pr.Post("/", h.HandleCreate)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireToken, auth.RequireAdmin)
		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeGet)
		pr.Put("/{id}/approve", h.HandleApprove)
		pr.Put("/{id}/reject", h.HandleReject)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
