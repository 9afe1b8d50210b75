package submissions

import (
	"context"
	"net/http"

	"github.com/dalemusser/mediateam/internal/app/system/paging"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeList returns the review queue, newest first. ?status= filters.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	status := query.Get(r, "status")
	switch status {
	case "", models.SubmissionPending, models.SubmissionApproved, models.SubmissionRejected:
	default:
		respond.BadRequest(w, "status must be pending, approved or rejected")
		return
	}
	pg := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	subs, total, err := h.Submissions.List(ctx, status, pg.Skip(), pg.Limit64())
	if err != nil {
		respond.Internal(w, h.Log, "list submissions", err)
		return
	}
	respond.List(w, subs, pg.Result(total))
}

// ServeGet returns one submission.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sub, err := h.Submissions.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, h.Log, "get submission", err)
		return
	}
	respond.OK(w, sub)
}
