// internal/app/features/analytics/handler.go
package analytics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	eventstore "github.com/dalemusser/mediateam/internal/app/store/events"
	minutesstore "github.com/dalemusser/mediateam/internal/app/store/minutes"
	rolestore "github.com/dalemusser/mediateam/internal/app/store/roles"
	submissionstore "github.com/dalemusser/mediateam/internal/app/store/submissions"
	userrolestore "github.com/dalemusser/mediateam/internal/app/store/userroles"
	userstore "github.com/dalemusser/mediateam/internal/app/store/users"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTrendMonths = 6
	maxTrendMonths     = 24
)

type Handler struct {
	Log         *zap.Logger
	Submissions *submissionstore.Store
	Users       *userstore.Store
	Roles       *rolestore.Store
	UserRoles   *userrolestore.Store
	Events      *eventstore.Store
	Minutes     *minutesstore.Store

	now func() time.Time
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:         logger,
		Submissions: submissionstore.New(db),
		Users:       userstore.New(db),
		Roles:       rolestore.New(db),
		UserRoles:   userrolestore.New(db),
		Events:      eventstore.New(db),
		Minutes:     minutesstore.New(db),
		now:         time.Now,
	}
}

type roleCount struct {
	ID       primitive.ObjectID `json:"id"`
	Name     string             `json:"name"`
	IsActive bool               `json:"isActive"`
	Members  int64              `json:"memberCount"`
}

type overview struct {
	Submissions    map[string]int64 `json:"submissions"`
	Users          map[string]int64 `json:"users"`
	Roles          []roleCount      `json:"roles"`
	UpcomingEvents int64            `json:"upcomingEvents"`
	Minutes        int64            `json:"minutes"`
}

// ServeOverview handles GET /analytics/overview. Every known status is
// present in the count maps, zero when no record has it.
func (h *Handler) ServeOverview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		out     overview
		roles   []models.Role
		members map[primitive.ObjectID]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Submissions, err = h.Submissions.CountByStatus(gctx)
		return
	})
	g.Go(func() (err error) {
		out.Users, err = h.Users.CountByStatus(gctx)
		return
	})
	g.Go(func() (err error) {
		roles, err = h.Roles.List(gctx, false)
		return
	})
	g.Go(func() (err error) {
		members, err = h.UserRoles.MemberCounts(gctx)
		return
	})
	g.Go(func() (err error) {
		out.UpcomingEvents, err = h.Events.CountUpcoming(gctx, h.now())
		return
	})
	g.Go(func() (err error) {
		out.Minutes, err = h.Minutes.Count(gctx)
		return
	})
	if err := g.Wait(); err != nil {
		respond.Internal(w, h.Log, "analytics overview", err)
		return
	}

	out.Submissions = fill(out.Submissions, models.SubmissionPending, models.SubmissionApproved, models.SubmissionRejected)
	out.Users = fill(out.Users, models.UserStatusPending, models.UserStatusActive, models.UserStatusRejected, models.UserStatusSuspended)
	out.Roles = make([]roleCount, 0, len(roles))
	for _, role := range roles {
		out.Roles = append(out.Roles, roleCount{ID: role.ID, Name: role.Name, IsActive: role.IsActive, Members: members[role.ID]})
	}
	respond.OK(w, out)
}

func fill(m map[string]int64, keys ...string) map[string]int64 {
	if m == nil {
		m = map[string]int64{}
	}
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			m[k] = 0
		}
	}
	return m
}

// ServeSubmissionTrend handles GET /analytics/submissions/trend?months=N.
// The result has one entry per month, oldest first, ending with the
// current month.
func (h *Handler) ServeSubmissionTrend(w http.ResponseWriter, r *http.Request) {
	months := defaultTrendMonths
	if s := query.Get(r, "months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxTrendMonths {
			respond.BadRequest(w, "months must be between 1 and "+strconv.Itoa(maxTrendMonths))
			return
		}
		months = n
	}

	now := h.now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	counts, err := h.Submissions.MonthlyTrend(ctx, first)
	if err != nil {
		respond.Internal(w, h.Log, "submission trend", err)
		return
	}
	respond.OK(w, series(first, months, counts))
}

// series expands sparse month counts into a dense run of n months
// starting at first.
func series(first time.Time, n int, counts []submissionstore.MonthCount) []submissionstore.MonthCount {
	byMonth := make(map[[2]int]int64, len(counts))
	for _, c := range counts {
		byMonth[[2]int{c.Year, c.Month}] = c.Count
	}
	out := make([]submissionstore.MonthCount, 0, n)
	for i := range n {
		m := first.AddDate(0, i, 0)
		key := [2]int{m.Year(), int(m.Month())}
		out = append(out, submissionstore.MonthCount{Year: key[0], Month: key[1], Count: byMonth[key]})
	}
	return out
}
