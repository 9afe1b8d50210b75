// internal/domain/models/role.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a named bundle of permissions. Slug is derived from Name when the
// role is created and is never recomputed afterwards.
type Role struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Slug             string             `bson:"slug" json:"slug"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	Responsibilities []string           `bson:"responsibilities" json:"responsibilities"`
	Permissions      []Permission       `bson:"permissions" json:"permissions"`
	IsActive         bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// UserRole links a user to a role. At most one exists per (UserID, RoleID),
// enforced by a unique index on user_roles.
type UserRole struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"userId"`
	RoleID     primitive.ObjectID `bson:"role_id" json:"roleId"`
	AssignedBy primitive.ObjectID `bson:"assigned_by" json:"assignedBy"`
	AssignedAt time.Time          `bson:"assigned_at" json:"assignedAt"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
}
