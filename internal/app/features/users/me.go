package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/dalemusser/mediateam/internal/domain/models"
)

// ServeMyRoles lists the signed-in user's roles. Admins hold none.
func (h *Handler) ServeMyRoles(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized, no token")
		return
	}
	if p.IsAdmin() {
		respond.OK(w, []heldRole{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	held, err := h.rolesOf(ctx, p.ID)
	if err != nil {
		respond.Internal(w, h.Log, "load my roles", err)
		return
	}
	respond.OK(w, held)
}

// ServeMyPermissions returns the union of permissions the signed-in user
// holds. Admins are reported as holding every permission.
func (h *Handler) ServeMyPermissions(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized, no token")
		return
	}
	if p.IsAdmin() {
		respond.OK(w, permissionsView{IsAdmin: true, Permissions: models.PermissionStrings(models.AllPermissions)})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	set, n, err := h.Checker.Resolve(ctx, p.ID)
	if err != nil {
		respond.Internal(w, h.Log, "resolve permissions", err)
		return
	}
	respond.OK(w, permissionsView{Roles: n, Permissions: models.PermissionStrings(set.Sorted())})
}
