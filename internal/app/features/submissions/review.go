package submissions

import (
	"context"
	"net/http"

	"github.com/dalemusser/mediateam/internal/app/system/auditlog"
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/dalemusser/mediateam/internal/app/system/notify"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.uber.org/zap"
)

// HandleApprove approves a pending application and activates the
// applicant's account.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	var req approveRequest
	if r.ContentLength != 0 {
		if err := respond.DecodeJSON(r, &req); err != nil {
			respond.Error(w, h.Log, "decode approval", err)
			return
		}
	}
	admin, _ := auth.CurrentPrincipal(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sub, err := h.Submissions.Review(ctx, id, models.SubmissionApproved, admin.ID, req.Notes)
	if err != nil {
		respond.Error(w, h.Log, "approve submission", err)
		return
	}

	if sub.UserID != nil {
		if err := h.Users.SetStatus(ctx, *sub.UserID, models.UserStatusActive); err != nil {
			respond.Error(w, h.Log, "activate applicant", err)
			return
		}
		if _, err := h.Notify.ApplicationApproved(ctx, *sub.UserID); err != nil {
			notify.ReportFailure(h.Log, models.NotifyApplicationApproved, err, zap.String("submission_id", sub.ID.Hex()))
		}
	} else {
		h.Log.Warn("approved submission has no linked account", zap.String("submission_id", sub.ID.Hex()))
	}

	h.Activity.LogRequest(r, auditlog.Entry{
		AdminID:     admin.ID,
		Action:      models.ActionApplicationApproved,
		Target:      auditlog.TargetOf(models.TargetRegistration, sub.ID),
		Description: "Approved application from " + sub.FullName,
		Metadata:    map[string]any{"email": sub.Email},
	})

	respond.OKMessage(w, "Application approved", sub)
}

// HandleReject rejects a pending application. The reason is shown to the
// applicant in their notification.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	var req rejectRequest
	if r.ContentLength != 0 {
		if err := respond.DecodeJSON(r, &req); err != nil {
			respond.Error(w, h.Log, "decode rejection", err)
			return
		}
	}
	admin, _ := auth.CurrentPrincipal(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sub, err := h.Submissions.Review(ctx, id, models.SubmissionRejected, admin.ID, req.Reason)
	if err != nil {
		respond.Error(w, h.Log, "reject submission", err)
		return
	}

	if sub.UserID != nil {
		if err := h.Users.SetStatus(ctx, *sub.UserID, models.UserStatusRejected); err != nil {
			respond.Error(w, h.Log, "reject applicant", err)
			return
		}
		if _, err := h.Notify.ApplicationRejected(ctx, *sub.UserID, req.Reason); err != nil {
			notify.ReportFailure(h.Log, models.NotifyApplicationRejected, err, zap.String("submission_id", sub.ID.Hex()))
		}
	}

	h.Activity.LogRequest(r, auditlog.Entry{
		AdminID:     admin.ID,
		Action:      models.ActionApplicationRejected,
		Target:      auditlog.TargetOf(models.TargetRegistration, sub.ID),
		Description: "Rejected application from " + sub.FullName,
		Metadata:    map[string]any{"email": sub.Email, "reason": req.Reason},
	})

	respond.OKMessage(w, "Application rejected", sub)
}

// HandleDelete removes a submission. Its account is removed too unless it
// has already been activated.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	admin, _ := auth.CurrentPrincipal(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sub, err := h.Submissions.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, h.Log, "load submission", err)
		return
	}
	if _, err := h.Submissions.Delete(ctx, id); err != nil {
		respond.Internal(w, h.Log, "delete submission", err)
		return
	}

	if sub.UserID != nil {
		u, err := h.Users.GetByID(ctx, *sub.UserID)
		switch {
		case err != nil:
			h.Log.Warn("applicant account not removed", zap.String("user_id", sub.UserID.Hex()), zap.Error(err))
		case u.Status != models.UserStatusActive:
			if _, err := h.Users.Delete(ctx, u.ID); err != nil {
				h.Log.Error("failed to remove applicant account", zap.String("user_id", u.ID.Hex()), zap.Error(err))
			}
		}
	}

	h.Activity.LogRequest(r, auditlog.Entry{
		AdminID:     admin.ID,
		Action:      models.ActionApplicationDeleted,
		Target:      auditlog.TargetOf(models.TargetRegistration, sub.ID),
		Description: "Deleted application from " + sub.FullName,
		Metadata:    map[string]any{"email": sub.Email, "status": sub.Status},
	})

	respond.OKMessage(w, "Application deleted", nil)
}
