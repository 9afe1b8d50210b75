package userstore_test

import (
	"context"
	"errors"
	"testing"

	userstore "github.com/dalemusser/mediateam/internal/app/store/users"
	"github.com/dalemusser/mediateam/internal/app/system/apperr"
	"github.com/dalemusser/mediateam/internal/app/system/indexes"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/dalemusser/mediateam/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*mongo.Database, *userstore.Store, context.Context) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return db, userstore.New(db), ctx
}

func TestStore_Create_Normalizes(t *testing.T) {
	_, store, ctx := setup(t)

	created, err := store.Create(ctx, models.User{
		FullName: "  Grace   Hopper ",
		Email:    " Grace@Example.COM ",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.FullName != "Grace Hopper" {
		t.Errorf("FullName: got %q", created.FullName)
	}
	if created.Email != "grace@example.com" {
		t.Errorf("Email: got %q", created.Email)
	}
	if created.FullNameCI == "" {
		t.Error("expected FullNameCI to be set")
	}
	if created.Status != models.UserStatusPending {
		t.Errorf("expected status pending, got %q", created.Status)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	_, store, ctx := setup(t)

	if _, err := store.Create(ctx, models.User{FullName: "A", Email: "dup@example.com"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := store.Create(ctx, models.User{FullName: "B", Email: "DUP@example.com"})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Fatalf("got %v, want ErrDuplicateEmail", err)
	}
	if !errors.Is(err, apperr.ErrConflict) {
		t.Error("duplicate email should be a conflict")
	}
}

func TestStore_Create_BadStatus(t *testing.T) {
	_, store, ctx := setup(t)
	_, err := store.Create(ctx, models.User{FullName: "A", Email: "a@example.com", Status: "bogus"})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("got %v, want invalid", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	_, store, ctx := setup(t)
	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestStore_SetStatus_AndIsActive(t *testing.T) {
	db, store, ctx := setup(t)
	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUser(ctx, "Pat", "pat@example.com", models.UserStatusPending)

	active, err := store.IsActive(ctx, u.ID)
	if err != nil || active {
		t.Fatalf("IsActive before: got (%v, %v)", active, err)
	}
	if err := store.SetStatus(ctx, u.ID, models.UserStatusActive); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	active, _ = store.IsActive(ctx, u.ID)
	if !active {
		t.Error("expected active after SetStatus")
	}

	if err := store.SetStatus(ctx, primitive.NewObjectID(), models.UserStatusActive); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("missing user: got %v", err)
	}
}

func TestStore_List_FilterAndSearch(t *testing.T) {
	db, store, ctx := setup(t)
	fx := testutil.NewFixtures(t, db)
	fx.CreateUser(ctx, "Alice Adams", "alice@example.com", models.UserStatusActive)
	fx.CreateUser(ctx, "Bob Brown", "bob@example.com", models.UserStatusActive)
	fx.CreateUser(ctx, "Alan Pending", "alan@example.com", models.UserStatusPending)

	users, total, err := store.List(ctx, userstore.ListFilter{Status: models.UserStatusActive}, 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(users) != 2 {
		t.Errorf("active: got total=%d len=%d, want 2", total, len(users))
	}
	if users[0].FullName != "Alice Adams" {
		t.Errorf("sort: first is %q", users[0].FullName)
	}

	_, total, _ = store.List(ctx, userstore.ListFilter{Search: "al"}, 0, 10)
	if total != 2 {
		t.Errorf("search 'al': got %d, want 2", total)
	}

	page, total, _ := store.List(ctx, userstore.ListFilter{}, 2, 2)
	if total != 3 || len(page) != 1 {
		t.Errorf("paging: got total=%d len=%d", total, len(page))
	}
}

func TestStore_ActiveIDs_CountByStatus(t *testing.T) {
	db, store, ctx := setup(t)
	fx := testutil.NewFixtures(t, db)
	a := fx.CreateUser(ctx, "A", "a@example.com", models.UserStatusActive)
	fx.CreateUser(ctx, "B", "b@example.com", models.UserStatusSuspended)
	fx.CreateUser(ctx, "C", "c@example.com", models.UserStatusSuspended)

	ids, err := store.ActiveIDs(ctx)
	if err != nil {
		t.Fatalf("ActiveIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != a.ID {
		t.Errorf("ActiveIDs: got %v", ids)
	}

	counts, err := store.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[models.UserStatusSuspended] != 2 || counts[models.UserStatusActive] != 1 {
		t.Errorf("counts: got %v", counts)
	}
}
