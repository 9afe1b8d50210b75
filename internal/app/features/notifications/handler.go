// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"net/http"
	"strconv"
	"time"

	notificationstore "github.com/dalemusser/mediateam/internal/app/store/notifications"
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/dalemusser/mediateam/internal/app/system/metrics"
	"github.com/dalemusser/mediateam/internal/app/system/paging"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the signed-in account's notification inbox. Every
// operation is scoped to the principal; another account's notifications
// are invisible.
type Handler struct {
	Log           *zap.Logger
	Notifications *notificationstore.Store
	RetentionDays int
}

func NewHandler(db *mongo.Database, retentionDays int, logger *zap.Logger) *Handler {
	return &Handler{
		Log:           logger,
		Notifications: notificationstore.New(db),
		RetentionDays: retentionDays,
	}
}

type cleanupRequest struct {
	Days int `json:"days" validate:"omitempty,min=1,max=3650"`
}

// ServeList returns the inbox newest first. ?unread=true hides read items.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)
	unreadOnly, _ := strconv.ParseBool(query.Get(r, "unread"))
	pg := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, total, err := h.Notifications.List(ctx, p.ID, unreadOnly, pg.Skip(), pg.Limit64())
	if err != nil {
		respond.Internal(w, h.Log, "list notifications", err)
		return
	}
	respond.List(w, list, pg.Result(total))
}

func (h *Handler) ServeUnreadCount(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Notifications.UnreadCount(ctx, p.ID)
	if err != nil {
		respond.Internal(w, h.Log, "count unread notifications", err)
		return
	}
	respond.OK(w, map[string]int64{"count": n})
}

// HandleMarkRead marks one notification read. Marking an already-read,
// missing or foreign notification succeeds without changing anything.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	p, _ := auth.CurrentPrincipal(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, p.ID, id); err != nil {
		respond.Internal(w, h.Log, "mark notification read", err)
		return
	}
	respond.OKMessage(w, "Notification marked as read", nil)
}

func (h *Handler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Notifications.MarkAllRead(ctx, p.ID)
	if err != nil {
		respond.Internal(w, h.Log, "mark all notifications read", err)
		return
	}
	respond.OKMessage(w, "All notifications marked as read", map[string]int64{"updated": n})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	p, _ := auth.CurrentPrincipal(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Notifications.Delete(ctx, p.ID, id)
	if err != nil {
		respond.Internal(w, h.Log, "delete notification", err)
		return
	}
	if n == 0 {
		respond.NotFound(w, "Notification not found")
		return
	}
	respond.OKMessage(w, "Notification deleted", nil)
}

// HandleCleanup runs the retention sweep on demand: read notifications
// older than days (default RetentionDays) are deleted.
func (h *Handler) HandleCleanup(w http.ResponseWriter, r *http.Request) {
	var req cleanupRequest
	if r.ContentLength != 0 {
		if err := respond.DecodeJSON(r, &req); err != nil {
			respond.Error(w, h.Log, "decode cleanup", err)
			return
		}
	}
	days := req.Days
	if days == 0 {
		days = h.RetentionDays
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "notification cleanup")
	defer cancel()

	n, err := h.Notifications.Cleanup(ctx, time.Duration(days)*24*time.Hour)
	if err != nil {
		respond.Internal(w, h.Log, "notification cleanup", err)
		return
	}
	metrics.NotificationsCleaned(n)
	h.Log.Info("notification cleanup", zap.Int("days", days), zap.Int64("deleted", n))
	respond.OKMessage(w, "Cleanup complete", map[string]any{"deleted": n, "days": days})
}
