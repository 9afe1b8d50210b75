package roles

import (
	"context"
	"net/http"

	rolestore "github.com/dalemusser/mediateam/internal/app/store/roles"
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.uber.org/zap"
)

// ServeList returns roles sorted by name. Portal users only see active
// roles.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Roles.List(ctx, !p.IsAdmin())
	if err != nil {
		respond.Internal(w, h.Log, "list roles", err)
		return
	}
	respond.OK(w, list)
}

func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	role, err := h.Roles.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, h.Log, "get role", err)
		return
	}
	if p, _ := auth.CurrentPrincipal(r); !p.IsAdmin() && !role.IsActive {
		respond.NotFound(w, "Role not found")
		return
	}
	respond.OK(w, role)
}

// HandleCreate creates a role. Its slug is derived from the name here and
// never changes afterwards.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, "decode role", err)
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	role, err := h.Roles.Create(ctx, models.Role{
		Name:             req.Name,
		Description:      req.Description,
		Responsibilities: req.Responsibilities,
		Permissions:      req.Permissions,
		IsActive:         active,
	})
	if err != nil {
		respond.Error(w, h.Log, "create role", err)
		return
	}
	respond.Created(w, "Role created", role)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	var req updateRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, "decode role update", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	role, err := h.Roles.Update(ctx, id, rolestore.Update{
		Name:             req.Name,
		Description:      req.Description,
		Responsibilities: req.Responsibilities,
		Permissions:      req.Permissions,
		IsActive:         req.IsActive,
	})
	if err != nil {
		respond.Error(w, h.Log, "update role", err)
		return
	}
	respond.OKMessage(w, "Role updated", role)
}

// HandleDelete removes a role and every assignment of it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Roles.Delete(ctx, id)
	if err != nil {
		respond.Internal(w, h.Log, "delete role", err)
		return
	}
	if n == 0 {
		respond.NotFound(w, "Role not found")
		return
	}
	removed, err := h.UserRoles.DeleteByRole(ctx, id)
	if err != nil {
		respond.Internal(w, h.Log, "delete role assignments", err)
		return
	}
	h.Log.Info("role deleted", zap.String("role_id", id.Hex()), zap.Int64("assignments_removed", removed))
	respond.OKMessage(w, "Role deleted", map[string]int64{"assignmentsRemoved": removed})
}
