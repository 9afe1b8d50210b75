package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/mediateam/internal/app/system/auditlog"
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/dalemusser/mediateam/internal/app/system/authutil"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/dalemusser/mediateam/internal/domain/models"
)

// HandleCreate lets an admin create an active account directly, without
// an application.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, "decode user", err)
		return
	}
	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	admin, _ := auth.CurrentPrincipal(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Status:       models.UserStatusActive,
	})
	if err != nil {
		respond.Error(w, h.Log, "create user", err)
		return
	}

	h.Activity.LogRequest(r, auditlog.Entry{
		AdminID:     admin.ID,
		Action:      models.ActionUserCreated,
		Target:      auditlog.TargetOf(models.TargetUser, u.ID),
		Description: "Created user " + u.FullName,
		Metadata:    map[string]any{"email": u.Email},
	})
	respond.Created(w, "User created", u)
}

// HandleSetStatus changes a user's status. Suspending a user revokes
// access on their next request.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, "decode status", err)
		return
	}
	admin, _ := auth.CurrentPrincipal(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	before, err := h.Users.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, h.Log, "load user", err)
		return
	}
	if err := h.Users.SetStatus(ctx, id, req.Status); err != nil {
		respond.Error(w, h.Log, "set user status", err)
		return
	}

	meta := map[string]any{"from": before.Status, "to": req.Status}
	if req.Reason != "" {
		meta["reason"] = req.Reason
	}
	h.Activity.LogRequest(r, auditlog.Entry{
		AdminID:     admin.ID,
		Action:      models.ActionUserStatusChanged,
		Target:      auditlog.TargetOf(models.TargetUser, id),
		Description: "Changed status of " + before.FullName + " to " + req.Status,
		Metadata:    meta,
	})

	after, err := h.Users.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, h.Log, "reload user", err)
		return
	}
	respond.OKMessage(w, "User status updated", after)
}
