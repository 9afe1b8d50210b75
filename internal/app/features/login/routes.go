// internal/app/features/login/routes.go
package login

import (
	"net/http"

	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the auth API. limit throttles the login endpoints.
// Typically: r.Mount("/api/auth", login.Routes(h, mw, limiter))
func Routes(h *Handler, mw *auth.Middleware, limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		if limit != nil {
			pr.Use(limit)
		}
		pr.Post("/login", h.HandleUserLogin)
		pr.Post("/admin/login", h.HandleAdminLogin)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireToken)
		pr.Get("/me", h.ServeMe)
		pr.Put("/password", h.HandleChangePassword)
	})

	return r
}
