// internal/app/features/reports/routes.go
package reports

import (
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireToken, auth.RequireAdmin)

	r.Get("/submissions.csv", h.ServeSubmissionsCSV)
	r.Get("/users.csv", h.ServeUsersCSV)

	return r
}
