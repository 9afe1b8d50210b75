package submissions

import (
	"context"
	"net/http"

	"github.com/dalemusser/mediateam/internal/app/system/authutil"
	"github.com/dalemusser/mediateam/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate accepts a public application. It creates the submission and
// a pending portal account linked to it; the account can sign in once an
// admin approves the application.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, "decode submission", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	exists, err := h.Users.EmailExists(ctx, req.Email)
	if err != nil {
		respond.Internal(w, h.Log, "email lookup failed", err)
		return
	}
	if exists {
		respond.Conflict(w, "An application with this email already exists")
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	subID := primitive.NewObjectID()
	user, err := h.Users.Create(ctx, models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Status:       models.UserStatusPending,
		SubmissionID: &subID,
	})
	if err != nil {
		respond.Error(w, h.Log, "create applicant account", err)
		return
	}

	sub, err := h.Submissions.Create(ctx, models.Submission{
		ID:            subID,
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		DateOfBirth:   req.DateOfBirth,
		Address:       htmlsanitize.PlainText(req.Address),
		MinistryAreas: req.MinistryAreas,
		Skills:        htmlsanitize.PlainText(req.Skills),
		Experience:    htmlsanitize.PlainText(req.Experience),
		Availability:  req.Availability,
		Motivation:    htmlsanitize.PlainText(req.Motivation),
		UserID:        &user.ID,
	})
	if err != nil {
		// Without its application the account could never be approved.
		if _, derr := h.Users.Delete(ctx, user.ID); derr != nil {
			h.Log.Error("failed to remove orphaned applicant account",
				zap.String("user_id", user.ID.Hex()), zap.Error(derr))
		}
		respond.Internal(w, h.Log, "create submission", err)
		return
	}

	h.Log.Info("application submitted",
		zap.String("submission_id", sub.ID.Hex()),
		zap.Strings("ministry_areas", sub.MinistryAreas))
	respond.Created(w, "Application submitted successfully", sub)
}
