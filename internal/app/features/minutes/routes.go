// internal/app/features/minutes/routes.go
package minutes

import (
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/dalemusser/mediateam/internal/app/system/authz"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, mw *auth.Middleware, checker *authz.Checker) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireToken)

	r.With(checker.RequireAdminOr(models.PermViewMinutes)).Get("/", h.ServeList)
	r.With(checker.RequireAdminOr(models.PermViewMinutes)).Get("/{id}", h.ServeGet)
	r.With(checker.RequireAdminOr(models.PermUploadMinutes)).Post("/", h.HandleCreate)
	r.With(checker.RequireAdminOr(models.PermEditMinutes)).Put("/{id}", h.HandleUpdate)
	r.With(checker.RequireAdminOr(models.PermDeleteMinutes)).Delete("/{id}", h.HandleDelete)

	return r
}
