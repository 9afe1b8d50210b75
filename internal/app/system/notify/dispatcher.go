// internal/app/system/notify/dispatcher.go
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/mediateam/internal/app/system/metrics"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrBadType is returned when a notification type is not in the enumeration.
var ErrBadType = errors.New("unknown notification type")

// Store persists notifications. InsertMany writes all records in one batch
// and returns how many were stored.
type Store interface {
	Insert(ctx context.Context, n models.Notification) (models.Notification, error)
	InsertMany(ctx context.Context, ns []models.Notification) (int, error)
}

// Message is the content of a notification, independent of its recipient.
type Message struct {
	Type     models.NotificationType
	Title    string
	Message  string
	Link     string
	Metadata map[string]any
}

// Dispatcher creates notifications in response to domain events. Errors
// are returned to the caller, who decides whether they matter.
type Dispatcher struct {
	store Store
	now   func() time.Time
}

// New constructs a Dispatcher over store.
func New(store Store) *Dispatcher {
	return &Dispatcher{store: store, now: time.Now}
}

func (d *Dispatcher) build(userID primitive.ObjectID, m Message) models.Notification {
	return models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Type:      m.Type,
		Title:     m.Title,
		Message:   m.Message,
		IsRead:    false,
		Link:      m.Link,
		Metadata:  m.Metadata,
		CreatedAt: d.now().UTC(),
	}
}

// Create persists one unread notification for userID.
func (d *Dispatcher) Create(ctx context.Context, userID primitive.ObjectID, m Message) (models.Notification, error) {
	if !m.Type.IsValid() {
		return models.Notification{}, fmt.Errorf("%w: %q", ErrBadType, m.Type)
	}
	n, err := d.store.Insert(ctx, d.build(userID, m))
	if err != nil {
		return models.Notification{}, fmt.Errorf("create notification: %w", err)
	}
	metrics.NotificationsCreated(string(m.Type), 1)
	return n, nil
}

// CreateMany persists one unread notification per recipient in a single
// batched insert and returns the number stored.
func (d *Dispatcher) CreateMany(ctx context.Context, userIDs []primitive.ObjectID, m Message) (int, error) {
	if !m.Type.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrBadType, m.Type)
	}
	if len(userIDs) == 0 {
		return 0, nil
	}
	batch := make([]models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		batch = append(batch, d.build(id, m))
	}
	n, err := d.store.InsertMany(ctx, batch)
	if err != nil {
		return n, fmt.Errorf("create notifications: %w", err)
	}
	metrics.NotificationsCreated(string(m.Type), n)
	return n, nil
}

// ApplicationApproved tells an applicant their application was approved.
func (d *Dispatcher) ApplicationApproved(ctx context.Context, userID primitive.ObjectID) (models.Notification, error) {
	return d.Create(ctx, userID, Message{
		Type:    models.NotifyApplicationApproved,
		Title:   "Application approved",
		Message: "Welcome to the media team! Your application has been approved and you can now sign in to the portal.",
		Link:    "/portal",
	})
}

// ApplicationRejected tells an applicant their application was declined.
func (d *Dispatcher) ApplicationRejected(ctx context.Context, userID primitive.ObjectID, reason string) (models.Notification, error) {
	msg := "Thank you for your interest in the media team. Unfortunately your application was not approved at this time."
	var meta map[string]any
	if reason != "" {
		msg += " Reason: " + reason
		meta = map[string]any{"reason": reason}
	}
	return d.Create(ctx, userID, Message{
		Type:     models.NotifyApplicationRejected,
		Title:    "Application update",
		Message:  msg,
		Metadata: meta,
	})
}

// RoleAssigned tells a user they were given a role.
func (d *Dispatcher) RoleAssigned(ctx context.Context, userID primitive.ObjectID, role models.Role) (models.Notification, error) {
	return d.Create(ctx, userID, Message{
		Type:     models.NotifyRoleAssigned,
		Title:    "New role assigned",
		Message:  fmt.Sprintf("You have been assigned the %s role.", role.Name),
		Link:     "/portal/roles",
		Metadata: map[string]any{"roleId": role.ID.Hex(), "roleName": role.Name},
	})
}

// RoleRemoved tells a user a role was taken away.
func (d *Dispatcher) RoleRemoved(ctx context.Context, userID primitive.ObjectID, role models.Role) (models.Notification, error) {
	return d.Create(ctx, userID, Message{
		Type:     models.NotifyRoleRemoved,
		Title:    "Role removed",
		Message:  fmt.Sprintf("You are no longer assigned the %s role.", role.Name),
		Link:     "/portal/roles",
		Metadata: map[string]any{"roleId": role.ID.Hex(), "roleName": role.Name},
	})
}

// EventCreated announces a new calendar event to every recipient.
func (d *Dispatcher) EventCreated(ctx context.Context, userIDs []primitive.ObjectID, ev models.Event) (int, error) {
	return d.CreateMany(ctx, userIDs, Message{
		Type:     models.NotifyEventCreated,
		Title:    "New event: " + ev.Title,
		Message:  fmt.Sprintf("%s is scheduled for %s.", ev.Title, ev.StartAt.Format("Mon Jan 2, 2006 3:04 PM")),
		Link:     "/portal/events/" + ev.ID.Hex(),
		Metadata: map[string]any{"eventId": ev.ID.Hex()},
	})
}

// EventUpdated announces a change to a calendar event.
func (d *Dispatcher) EventUpdated(ctx context.Context, userIDs []primitive.ObjectID, ev models.Event) (int, error) {
	return d.CreateMany(ctx, userIDs, Message{
		Type:     models.NotifyEventUpdated,
		Title:    "Event updated: " + ev.Title,
		Message:  fmt.Sprintf("Details for %s have changed. It is now scheduled for %s.", ev.Title, ev.StartAt.Format("Mon Jan 2, 2006 3:04 PM")),
		Link:     "/portal/events/" + ev.ID.Hex(),
		Metadata: map[string]any{"eventId": ev.ID.Hex()},
	})
}

// MinutesUploaded announces newly published meeting minutes.
func (d *Dispatcher) MinutesUploaded(ctx context.Context, userIDs []primitive.ObjectID, m models.Minutes) (int, error) {
	return d.CreateMany(ctx, userIDs, Message{
		Type:     models.NotifyMeetingUploaded,
		Title:    "Meeting minutes available",
		Message:  fmt.Sprintf("Minutes for %s (%s) have been uploaded.", m.Title, m.MeetingDate.Format("Jan 2, 2006")),
		Link:     "/portal/minutes/" + m.ID.Hex(),
		Metadata: map[string]any{"minutesId": m.ID.Hex()},
	})
}

// ReportFailure logs a notification that could not be created after the
// domain change it describes was committed, and counts it. The change is
// not rolled back.
func ReportFailure(log *zap.Logger, typ models.NotificationType, err error, fields ...zap.Field) {
	metrics.NotificationFailed(string(typ))
	if log == nil {
		return
	}
	log.Warn("notification dispatch failed",
		append(fields, zap.String("type", string(typ)), zap.Error(err))...)
}

// Without returns ids minus skip, for fan-outs that leave out the actor.
func Without(ids []primitive.ObjectID, skip primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id != skip {
			out = append(out, id)
		}
	}
	return out
}
