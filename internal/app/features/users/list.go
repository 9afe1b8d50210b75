package users

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/mediateam/internal/app/store/users"
	"github.com/dalemusser/mediateam/internal/app/system/paging"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeList returns portal users sorted by name. ?status= and ?search=
// (name or email prefix) filter.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	f := userstore.ListFilter{
		Status: query.Get(r, "status"),
		Search: query.Get(r, "search"),
	}
	if f.Status != "" && !models.IsValidUserStatus(f.Status) {
		respond.BadRequest(w, "Unknown status filter")
		return
	}
	pg := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, total, err := h.Users.List(ctx, f, pg.Skip(), pg.Limit64())
	if err != nil {
		respond.Internal(w, h.Log, "list users", err)
		return
	}
	respond.List(w, list, pg.Result(total))
}

// ServeGet returns one user with their roles.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, h.Log, "get user", err)
		return
	}
	held, err := h.rolesOf(ctx, id)
	if err != nil {
		respond.Internal(w, h.Log, "load user roles", err)
		return
	}
	respond.OK(w, userDetail{User: u, Roles: held})
}

// rolesOf joins a user's assignments with their role records. Assignments
// whose role has since been deleted are skipped.
func (h *Handler) rolesOf(ctx context.Context, userID primitive.ObjectID) ([]heldRole, error) {
	assignments, err := h.UserRoles.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(assignments))
	for i, a := range assignments {
		ids[i] = a.RoleID
	}
	roles, err := h.Roles.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Role, len(roles))
	for _, role := range roles {
		byID[role.ID] = role
	}

	out := make([]heldRole, 0, len(assignments))
	for _, a := range assignments {
		role, ok := byID[a.RoleID]
		if !ok {
			continue
		}
		out = append(out, heldRole{Role: role, AssignedAt: a.AssignedAt, AssignedBy: a.AssignedBy})
	}
	return out, nil
}
