// internal/app/features/events/routes.go
package events

import (
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/dalemusser/mediateam/internal/app/system/authz"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the calendar. Each route requires its calendar permission;
// admins pass without role assignments.
func Routes(h *Handler, mw *auth.Middleware, checker *authz.Checker) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireToken)

	r.With(checker.RequireAdminOr(models.PermViewCalendar)).Get("/", h.ServeList)
	r.With(checker.RequireAdminOr(models.PermViewCalendar)).Get("/{id}", h.ServeGet)
	r.With(checker.RequireAdminOr(models.PermCreateEvents)).Post("/", h.HandleCreate)
	r.With(checker.RequireAdminOr(models.PermEditEvents)).Put("/{id}", h.HandleUpdate)
	r.With(checker.RequireAdminOr(models.PermDeleteEvents)).Delete("/{id}", h.HandleDelete)

	return r
}
