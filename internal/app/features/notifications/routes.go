// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, mw *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireToken)

	r.Get("/", h.ServeList)
	r.Get("/unread-count", h.ServeUnreadCount)
	r.Put("/read-all", h.HandleMarkAllRead)
	r.Put("/{id}/read", h.HandleMarkRead)
	r.Delete("/{id}", h.HandleDelete)

	r.With(auth.RequireAdmin).Post("/cleanup", h.HandleCleanup)

	return r
}
