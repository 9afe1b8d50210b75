// internal/domain/models/adminactivity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityAction tags what an administrator did.
type ActivityAction string

const (
	ActionApplicationApproved ActivityAction = "application_approved"
	ActionApplicationRejected ActivityAction = "application_rejected"
	ActionApplicationDeleted  ActivityAction = "application_deleted"
	ActionEventCreated        ActivityAction = "event_created"
	ActionEventUpdated        ActivityAction = "event_updated"
	ActionEventDeleted        ActivityAction = "event_deleted"
	ActionRoleAssigned        ActivityAction = "role_assigned"
	ActionRoleRemoved         ActivityAction = "role_removed"
	ActionUserStatusChanged   ActivityAction = "user_status_changed"
	ActionAdminLogin          ActivityAction = "admin_login"
	ActionUserCreated         ActivityAction = "user_created"
)

// IsValid reports whether a belongs to the action enumeration.
func (a ActivityAction) IsValid() bool {
	switch a {
	case ActionApplicationApproved, ActionApplicationRejected, ActionApplicationDeleted,
		ActionEventCreated, ActionEventUpdated, ActionEventDeleted,
		ActionRoleAssigned, ActionRoleRemoved,
		ActionUserStatusChanged, ActionAdminLogin, ActionUserCreated:
		return true
	}
	return false
}

// TargetKind says which collection an activity's target lives in.
type TargetKind string

const (
	TargetRegistration TargetKind = "registration"
	TargetEvent        TargetKind = "event"
	TargetUser         TargetKind = "user"
	TargetRole         TargetKind = "role"
	TargetSystem       TargetKind = "system"
)

// IsValid reports whether k belongs to the target kind enumeration.
func (k TargetKind) IsValid() bool {
	switch k {
	case TargetRegistration, TargetEvent, TargetUser, TargetRole, TargetSystem:
		return true
	}
	return false
}

// Target is the polymorphic reference of an activity record: Kind decides
// which collection ID is resolved against. System targets have no ID.
type Target struct {
	Kind TargetKind          `bson:"kind" json:"kind"`
	ID   *primitive.ObjectID `bson:"id,omitempty" json:"id,omitempty"`
}

// AdminActivity is an append-only audit record of an administrator action.
type AdminActivity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdminID     primitive.ObjectID `bson:"admin_id" json:"adminId"`
	Action      ActivityAction     `bson:"action" json:"action"`
	Target      Target             `bson:"target" json:"target"`
	Description string             `bson:"description" json:"description"`
	Metadata    map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`
	IPAddress   string             `bson:"ip_address,omitempty" json:"ipAddress,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
