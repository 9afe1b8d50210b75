// internal/app/features/analytics/routes.go
package analytics

import (
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireToken, auth.RequireAdmin)

	r.Get("/overview", h.ServeOverview)
	r.Get("/submissions/trend", h.ServeSubmissionTrend)

	return r
}
