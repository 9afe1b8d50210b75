package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/mediateam/internal/app/system/authutil"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TestPassword is the password every fixture account is created with.
const TestPassword = "correct-horse-battery"

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db   *mongo.Database
	t    *testing.T
	hash string
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) passwordHash() string {
	if f.hash == "" {
		h, err := authutil.HashPassword(TestPassword)
		if err != nil {
			f.t.Fatalf("hash password: %v", err)
		}
		f.hash = h
	}
	return f.hash
}

// CreateUser creates a portal user with the given status.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, status string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     name,
		FullNameCI:   text.Fold(name),
		Email:        strings.ToLower(email),
		PasswordHash: f.passwordHash(),
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateAdmin creates an active administrator.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.Admin {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Admin{
		ID:           primitive.NewObjectID(),
		FullName:     name,
		Email:        strings.ToLower(email),
		PasswordHash: f.passwordHash(),
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("admins").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test admin: %v", err)
	}
	return a
}

// CreateRole creates an active role with the given permissions.
func (f *Fixtures) CreateRole(ctx context.Context, name string, perms ...models.Permission) models.Role {
	f.t.Helper()

	now := time.Now().UTC()
	r := models.Role{
		ID:               primitive.NewObjectID(),
		Name:             name,
		Slug:             strings.ReplaceAll(strings.ToLower(name), " ", "-"),
		Responsibilities: []string{},
		Permissions:      perms,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if r.Permissions == nil {
		r.Permissions = []models.Permission{}
	}
	if _, err := f.db.Collection("roles").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test role: %v", err)
	}
	return r
}

// AssignRole links userID to roleID.
func (f *Fixtures) AssignRole(ctx context.Context, userID, roleID, by primitive.ObjectID) models.UserRole {
	f.t.Helper()

	ur := models.UserRole{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		RoleID:     roleID,
		AssignedBy: by,
		AssignedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("user_roles").InsertOne(ctx, ur); err != nil {
		f.t.Fatalf("failed to assign test role: %v", err)
	}
	return ur
}

// CreateNotification inserts a notification with an explicit creation time.
func (f *Fixtures) CreateNotification(ctx context.Context, userID primitive.ObjectID, read bool, createdAt time.Time) models.Notification {
	f.t.Helper()

	n := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Type:      models.NotifyGeneral,
		Title:     "Test",
		Message:   "Test notification",
		IsRead:    read,
		CreatedAt: createdAt.UTC(),
	}
	if read {
		at := createdAt.UTC()
		n.ReadAt = &at
	}
	if _, err := f.db.Collection("notifications").InsertOne(ctx, n); err != nil {
		f.t.Fatalf("failed to create test notification: %v", err)
	}
	return n
}

// CreateSubmission inserts a pending application with a linked pending user.
func (f *Fixtures) CreateSubmission(ctx context.Context, name, email string) (models.Submission, models.User) {
	f.t.Helper()

	u := f.CreateUser(ctx, name, email, models.UserStatusPending)
	now := time.Now().UTC()
	s := models.Submission{
		ID:            primitive.NewObjectID(),
		FullName:      name,
		Email:         strings.ToLower(email),
		Phone:         "555-0100",
		MinistryAreas: []string{"photography"},
		Status:        models.SubmissionPending,
		UserID:        &u.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("submissions").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test submission: %v", err)
	}
	return s, u
}
