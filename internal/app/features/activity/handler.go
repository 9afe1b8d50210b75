// internal/app/features/activity/handler.go
package activity

import (
	"context"
	"errors"
	"net/http"
	"time"

	activitystore "github.com/dalemusser/mediateam/internal/app/store/activity"
	eventstore "github.com/dalemusser/mediateam/internal/app/store/events"
	rolestore "github.com/dalemusser/mediateam/internal/app/store/roles"
	submissionstore "github.com/dalemusser/mediateam/internal/app/store/submissions"
	userstore "github.com/dalemusser/mediateam/internal/app/store/users"
	"github.com/dalemusser/mediateam/internal/app/system/apperr"
	"github.com/dalemusser/mediateam/internal/app/system/auditlog"
	"github.com/dalemusser/mediateam/internal/app/system/paging"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the admin activity log.
type Handler struct {
	Log       *zap.Logger
	Activity  *activitystore.Store
	Resolvers auditlog.Resolvers
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:       logger,
		Activity:  activitystore.New(db),
		Resolvers: TargetResolvers(db),
	}
}

// TargetResolvers maps each activity target kind to the store that holds
// its records.
func TargetResolvers(db *mongo.Database) auditlog.Resolvers {
	subs := submissionstore.New(db)
	evs := eventstore.New(db)
	users := userstore.New(db)
	roles := rolestore.New(db)
	return auditlog.Resolvers{
		models.TargetRegistration: func(ctx context.Context, id primitive.ObjectID) (any, error) {
			return subs.GetByID(ctx, id)
		},
		models.TargetEvent: func(ctx context.Context, id primitive.ObjectID) (any, error) {
			return evs.GetByID(ctx, id)
		},
		models.TargetUser: func(ctx context.Context, id primitive.ObjectID) (any, error) {
			return users.GetByID(ctx, id)
		},
		models.TargetRole: func(ctx context.Context, id primitive.ObjectID) (any, error) {
			return roles.GetByID(ctx, id)
		},
	}
}

type detail struct {
	activitystore.Entry
	TargetRecord  any  `json:"targetRecord"`
	TargetMissing bool `json:"targetMissing,omitempty"`
}

// ServeList returns activity newest first. ?action= and ?adminId= filter.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	var f activitystore.Filter
	if a := query.Get(r, "action"); a != "" {
		f.Action = models.ActivityAction(a)
		if !f.Action.IsValid() {
			respond.BadRequest(w, "Unknown action filter")
			return
		}
	}
	if s := query.Get(r, "adminId"); s != "" {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			respond.BadRequest(w, "Invalid adminId")
			return
		}
		f.AdminID = &id
	}
	h.serveEntries(w, r, f)
}

// ServeByAdmin returns one admin's activity.
func (h *Handler) ServeByAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "adminId")
	if !ok {
		return
	}
	h.serveEntries(w, r, activitystore.Filter{AdminID: &id})
}

func (h *Handler) serveEntries(w http.ResponseWriter, r *http.Request, f activitystore.Filter) {
	pg := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, total, err := h.Activity.Recent(ctx, f, pg.Skip(), pg.Limit64())
	if err != nil {
		respond.Internal(w, h.Log, "list activity", err)
		return
	}
	respond.List(w, list, pg.Result(total))
}

func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st, err := h.Activity.Stats(ctx, time.Now())
	if err != nil {
		respond.Internal(w, h.Log, "activity stats", err)
		return
	}
	respond.OK(w, st)
}

// ServeGet returns one record with the record its target points at. A
// target that has since been deleted is reported as missing.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Activity.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, h.Log, "get activity", err)
		return
	}

	out := detail{Entry: *e}
	rec, err := h.Resolvers.Resolve(ctx, e.Target)
	switch {
	case err == nil:
		out.TargetRecord = rec
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, auditlog.ErrNoResolver):
		out.TargetMissing = true
	default:
		respond.Internal(w, h.Log, "resolve activity target", err)
		return
	}
	respond.OK(w, out)
}
