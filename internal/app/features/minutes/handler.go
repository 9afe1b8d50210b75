// internal/app/features/minutes/handler.go
package minutes

import (
	"context"
	"net/http"
	"strings"
	"time"

	minutesstore "github.com/dalemusser/mediateam/internal/app/store/minutes"
	userstore "github.com/dalemusser/mediateam/internal/app/store/users"
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/dalemusser/mediateam/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mediateam/internal/app/system/normalize"
	"github.com/dalemusser/mediateam/internal/app/system/notify"
	"github.com/dalemusser/mediateam/internal/app/system/paging"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves meeting minutes.
type Handler struct {
	Log     *zap.Logger
	Minutes *minutesstore.Store
	Users   *userstore.Store
	Notify  *notify.Dispatcher
}

func NewHandler(db *mongo.Database, dispatcher *notify.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		Log:     logger,
		Minutes: minutesstore.New(db),
		Users:   userstore.New(db),
		Notify:  dispatcher,
	}
}

type minutesRequest struct {
	Title       string    `json:"title" validate:"required,min=2,max=200"`
	MeetingDate time.Time `json:"meetingDate" validate:"required"`
	Content     string    `json:"content" validate:"required,max=100000"`
	Attendees   []string  `json:"attendees" validate:"max=200,dive,max=120"`
	ActionItems []string  `json:"actionItems" validate:"max=200,dive,max=500"`
}

func (req minutesRequest) minutes() models.Minutes {
	return models.Minutes{
		Title:       strings.TrimSpace(req.Title),
		MeetingDate: req.MeetingDate.UTC(),
		Content:     htmlsanitize.Sanitize(req.Content),
		Attendees:   normalize.List(req.Attendees),
		ActionItems: normalize.List(req.ActionItems),
	}
}

// ServeList returns minutes, most recent meeting first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	pg := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, total, err := h.Minutes.List(ctx, pg.Skip(), pg.Limit64())
	if err != nil {
		respond.Internal(w, h.Log, "list minutes", err)
		return
	}
	respond.List(w, list, pg.Result(total))
}

func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Minutes.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, h.Log, "get minutes", err)
		return
	}
	respond.OK(w, m)
}

// HandleCreate stores new minutes and tells every other active member.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req minutesRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, "decode minutes", err)
		return
	}
	m := req.minutes()
	if m.Content == "" {
		respond.BadRequest(w, "content is empty after sanitizing")
		return
	}
	p, _ := auth.CurrentPrincipal(r)
	m.UploadedBy = p.ID

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Minutes.Create(ctx, m)
	if err != nil {
		respond.Internal(w, h.Log, "create minutes", err)
		return
	}

	ids, err := h.Users.ActiveIDs(ctx)
	if err == nil {
		_, err = h.Notify.MinutesUploaded(ctx, notify.Without(ids, p.ID), m)
	}
	if err != nil {
		notify.ReportFailure(h.Log, models.NotifyMeetingUploaded, err, zap.String("minutes_id", m.ID.Hex()))
	}

	respond.Created(w, "Minutes uploaded", m)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	var req minutesRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, "decode minutes", err)
		return
	}
	m := req.minutes()
	m.ID = id

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Minutes.Replace(ctx, m)
	if err != nil {
		respond.Error(w, h.Log, "update minutes", err)
		return
	}
	respond.OKMessage(w, "Minutes updated", updated)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Minutes.Delete(ctx, id); err != nil {
		respond.Error(w, h.Log, "delete minutes", err)
		return
	}
	respond.OKMessage(w, "Minutes deleted", nil)
}
