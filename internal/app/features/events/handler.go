// internal/app/features/events/handler.go
package events

import (
	"context"
	"net/http"
	"strings"
	"time"

	eventstore "github.com/dalemusser/mediateam/internal/app/store/events"
	userstore "github.com/dalemusser/mediateam/internal/app/store/users"
	"github.com/dalemusser/mediateam/internal/app/system/auditlog"
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/dalemusser/mediateam/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mediateam/internal/app/system/notify"
	"github.com/dalemusser/mediateam/internal/app/system/paging"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the team calendar.
type Handler struct {
	Log      *zap.Logger
	Events   *eventstore.Store
	Users    *userstore.Store
	Notify   *notify.Dispatcher
	Activity *auditlog.Logger
}

func NewHandler(db *mongo.Database, dispatcher *notify.Dispatcher, activity *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		Events:   eventstore.New(db),
		Users:    userstore.New(db),
		Notify:   dispatcher,
		Activity: activity,
	}
}

type eventRequest struct {
	Title       string     `json:"title" validate:"required,min=2,max=200"`
	Description string     `json:"description" validate:"max=10000"`
	Location    string     `json:"location" validate:"max=200"`
	EventType   string     `json:"eventType" validate:"required,eventtype"`
	StartAt     time.Time  `json:"startAt" validate:"required"`
	EndAt       *time.Time `json:"endAt"`
}

func (req eventRequest) event() (models.Event, bool) {
	if req.EndAt != nil && !req.EndAt.After(req.StartAt) {
		return models.Event{}, false
	}
	ev := models.Event{
		Title:       strings.TrimSpace(req.Title),
		Description: htmlsanitize.Sanitize(req.Description),
		Location:    strings.TrimSpace(req.Location),
		EventType:   req.EventType,
		StartAt:     req.StartAt.UTC(),
	}
	if req.EndAt != nil {
		end := req.EndAt.UTC()
		ev.EndAt = &end
	}
	return ev, true
}

// parseTime accepts RFC 3339 timestamps or plain dates.
func parseTime(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// ServeList returns events by start time. ?from= and ?to= bound the range.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	from, ok1 := parseTime(query.Get(r, "from"))
	to, ok2 := parseTime(query.Get(r, "to"))
	if !ok1 || !ok2 {
		respond.BadRequest(w, "from and to must be dates (YYYY-MM-DD) or RFC 3339 timestamps")
		return
	}
	pg := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, total, err := h.Events.List(ctx, eventstore.Range{From: from, To: to}, pg.Skip(), pg.Limit64())
	if err != nil {
		respond.Internal(w, h.Log, "list events", err)
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

	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, h.Log, "get event", err)
		return
	}
	respond.OK(w, ev)
}

// HandleCreate adds an event and tells every other active member about it.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, "decode event", err)
		return
	}
	ev, ok := req.event()
	if !ok {
		respond.BadRequest(w, "endAt must be after startAt")
		return
	}
	p, _ := auth.CurrentPrincipal(r)
	ev.CreatedBy = p.ID

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.Events.Create(ctx, ev)
	if err != nil {
		respond.Internal(w, h.Log, "create event", err)
		return
	}

	h.announce(ctx, p, ev, models.NotifyEventCreated)
	h.record(r, p, models.ActionEventCreated, ev, "Created event "+ev.Title)
	respond.Created(w, "Event created", ev)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	var req eventRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, "decode event", err)
		return
	}
	ev, ok := req.event()
	if !ok {
		respond.BadRequest(w, "endAt must be after startAt")
		return
	}
	ev.ID = id
	p, _ := auth.CurrentPrincipal(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Events.Replace(ctx, ev)
	if err != nil {
		respond.Error(w, h.Log, "update event", err)
		return
	}

	h.announce(ctx, p, *updated, models.NotifyEventUpdated)
	h.record(r, p, models.ActionEventUpdated, *updated, "Updated event "+updated.Title)
	respond.OKMessage(w, "Event updated", updated)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	p, _ := auth.CurrentPrincipal(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, h.Log, "get event", err)
		return
	}
	if err := h.Events.Delete(ctx, id); err != nil {
		respond.Error(w, h.Log, "delete event", err)
		return
	}

	h.record(r, p, models.ActionEventDeleted, *ev, "Deleted event "+ev.Title)
	respond.OKMessage(w, "Event deleted", nil)
}

// announce notifies every active member except the actor. Failures are
// reported, not returned: the event change already happened.
func (h *Handler) announce(ctx context.Context, actor auth.Principal, ev models.Event, typ models.NotificationType) {
	ids, err := h.Users.ActiveIDs(ctx)
	if err != nil {
		notify.ReportFailure(h.Log, typ, err, zap.String("event_id", ev.ID.Hex()))
		return
	}
	ids = notify.Without(ids, actor.ID)

	var n int
	if typ == models.NotifyEventCreated {
		n, err = h.Notify.EventCreated(ctx, ids, ev)
	} else {
		n, err = h.Notify.EventUpdated(ctx, ids, ev)
	}
	if err != nil {
		notify.ReportFailure(h.Log, typ, err, zap.String("event_id", ev.ID.Hex()))
		return
	}
	h.Log.Debug("event announced", zap.String("event_id", ev.ID.Hex()), zap.Int("recipients", n))
}

// record writes an activity entry when the actor is an administrator.
// Members acting through calendar permissions are not admins.
func (h *Handler) record(r *http.Request, actor auth.Principal, action models.ActivityAction, ev models.Event, desc string) {
	if !actor.IsAdmin() {
		return
	}
	h.Activity.LogRequest(r, auditlog.Entry{
		AdminID:     actor.ID,
		Action:      action,
		Target:      auditlog.TargetOf(models.TargetEvent, ev.ID),
		Description: desc,
		Metadata:    map[string]any{"startAt": ev.StartAt, "eventType": ev.EventType},
	})
}
