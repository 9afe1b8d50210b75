// internal/app/features/activity/routes.go
package activity

import (
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireToken, auth.RequireAdmin)

	r.Get("/", h.ServeList)
	r.Get("/stats", h.ServeStats)
	r.Get("/admin/{adminId}", h.ServeByAdmin)
	r.Get("/{id}", h.ServeGet)

	return r
}
