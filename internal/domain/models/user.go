// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User status values.
const (
	UserStatusPending   = "pending"   // application submitted, not yet reviewed
	UserStatusActive    = "active"    // approved, may sign in to the portal
	UserStatusRejected  = "rejected"  // application rejected
	UserStatusSuspended = "suspended" // disabled by an administrator
)

// User is a portal account. Every applicant gets one in pending status when
// the registration form is submitted; approval flips it to active.
//
// NOTE:
//   - Roles are not embedded on User. Use the user_roles collection.
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName     string              `bson:"full_name" json:"fullName"`
	FullNameCI   string              `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string              `bson:"email" json:"email"`
	Phone        string              `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string              `bson:"password_hash" json:"-"`
	Status       string              `bson:"status" json:"status"`
	SubmissionID *primitive.ObjectID `bson:"submission_id,omitempty" json:"submissionId,omitempty"`

	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updatedAt"`
}

// IsValidUserStatus reports whether s is a known user status.
func IsValidUserStatus(s string) bool {
	switch s {
	case UserStatusPending, UserStatusActive, UserStatusRejected, UserStatusSuspended:
		return true
	}
	return false
}
