// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType tags what domain event produced a notification.
type NotificationType string

const (
	NotifyApplicationApproved NotificationType = "application_approved"
	NotifyApplicationRejected NotificationType = "application_rejected"
	NotifyRoleAssigned        NotificationType = "role_assigned"
	NotifyRoleRemoved         NotificationType = "role_removed"
	NotifyEventCreated        NotificationType = "event_created"
	NotifyEventUpdated        NotificationType = "event_updated"
	NotifyMeetingUploaded     NotificationType = "meeting_uploaded"
	NotifyGeneral             NotificationType = "general"
)

// IsValid reports whether t belongs to the notification type enumeration.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotifyApplicationApproved, NotifyApplicationRejected,
		NotifyRoleAssigned, NotifyRoleRemoved,
		NotifyEventCreated, NotifyEventUpdated,
		NotifyMeetingUploaded, NotifyGeneral:
		return true
	}
	return false
}

// Notification is a per-user message about a domain event. Only IsRead
// (and ReadAt) change after creation.
type Notification struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"userId"`
	Type     NotificationType   `bson:"type" json:"type"`
	Title    string             `bson:"title" json:"title"`
	Message  string             `bson:"message" json:"message"`
	IsRead   bool               `bson:"is_read" json:"isRead"`
	ReadAt   *time.Time         `bson:"read_at,omitempty" json:"readAt,omitempty"`
	Link     string             `bson:"link,omitempty" json:"link,omitempty"`
	Metadata map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
