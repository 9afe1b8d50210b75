package roles

import (
	"context"
	"net/http"

	"github.com/dalemusser/mediateam/internal/app/system/auditlog"
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/dalemusser/mediateam/internal/app/system/notify"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeMembers lists the users holding a role.
func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Roles.GetByID(ctx, id); err != nil {
		respond.Error(w, h.Log, "get role", err)
		return
	}
	assignments, err := h.UserRoles.ListByRole(ctx, id)
	if err != nil {
		respond.Internal(w, h.Log, "list role assignments", err)
		return
	}
	ids := make([]primitive.ObjectID, len(assignments))
	for i, a := range assignments {
		ids[i] = a.UserID
	}
	users, err := h.Users.GetByIDs(ctx, ids)
	if err != nil {
		respond.Internal(w, h.Log, "load role members", err)
		return
	}
	byID := make(map[primitive.ObjectID]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]member, 0, len(assignments))
	for _, a := range assignments {
		u, ok := byID[a.UserID]
		if !ok {
			continue
		}
		out = append(out, member{
			ID:         u.ID,
			FullName:   u.FullName,
			Email:      u.Email,
			Status:     u.Status,
			AssignedAt: a.AssignedAt,
			AssignedBy: a.AssignedBy,
			Notes:      a.Notes,
		})
	}
	respond.OK(w, out)
}

// HandleAssign gives a user a role. A second assignment of the same pair
// is a conflict; the unique index decides concurrent attempts.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	roleID, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	var req assignRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, "decode assignment", err)
		return
	}
	userID, _ := primitive.ObjectIDFromHex(req.UserID)
	admin, _ := auth.CurrentPrincipal(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	role, err := h.Roles.GetByID(ctx, roleID)
	if err != nil {
		respond.Error(w, h.Log, "get role", err)
		return
	}
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		respond.Error(w, h.Log, "get user", err)
		return
	}

	ur, err := h.UserRoles.Assign(ctx, models.UserRole{
		UserID:     u.ID,
		RoleID:     role.ID,
		AssignedBy: admin.ID,
		Notes:      req.Notes,
	})
	if err != nil {
		respond.Error(w, h.Log, "assign role", err)
		return
	}

	if _, err := h.Notify.RoleAssigned(ctx, u.ID, *role); err != nil {
		notify.ReportFailure(h.Log, models.NotifyRoleAssigned, err,
			zap.String("user_id", u.ID.Hex()), zap.String("role_id", role.ID.Hex()))
	}
	h.Activity.LogRequest(r, auditlog.Entry{
		AdminID:     admin.ID,
		Action:      models.ActionRoleAssigned,
		Target:      auditlog.TargetOf(models.TargetRole, role.ID),
		Description: "Assigned " + role.Name + " to " + u.FullName,
		Metadata:    map[string]any{"userId": u.ID.Hex(), "roleName": role.Name},
	})

	respond.Created(w, "Role assigned", ur)
}

// HandleUnassign takes a role away from a user.
func (h *Handler) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	roleID, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := respond.PathID(w, r, "userId")
	if !ok {
		return
	}
	admin, _ := auth.CurrentPrincipal(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	role, err := h.Roles.GetByID(ctx, roleID)
	if err != nil {
		respond.Error(w, h.Log, "get role", err)
		return
	}
	if err := h.UserRoles.Unassign(ctx, userID, roleID); err != nil {
		respond.Error(w, h.Log, "unassign role", err)
		return
	}

	if _, err := h.Notify.RoleRemoved(ctx, userID, *role); err != nil {
		notify.ReportFailure(h.Log, models.NotifyRoleRemoved, err,
			zap.String("user_id", userID.Hex()), zap.String("role_id", role.ID.Hex()))
	}
	h.Activity.LogRequest(r, auditlog.Entry{
		AdminID:     admin.ID,
		Action:      models.ActionRoleRemoved,
		Target:      auditlog.TargetOf(models.TargetRole, role.ID),
		Description: "Removed " + role.Name + " from user " + userID.Hex(),
		Metadata:    map[string]any{"userId": userID.Hex(), "roleName": role.Name},
	})

	respond.OKMessage(w, "Role removed", nil)
}
