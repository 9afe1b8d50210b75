package adminstore_test

import (
	"errors"
	"testing"

	adminstore "github.com/dalemusser/mediateam/internal/app/store/admins"
	"github.com/dalemusser/mediateam/internal/app/system/indexes"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/dalemusser/mediateam/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestStore_CreateAndLookup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	store := adminstore.New(db)

	a, err := store.Create(ctx, models.Admin{FullName: "Root Admin", Email: "Root@Church.org", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Status != adminstore.StatusActive {
		t.Errorf("status: got %q", a.Status)
	}

	got, err := store.GetByEmail(ctx, "root@church.org")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != a.ID {
		t.Errorf("id mismatch")
	}

	if _, err := store.Create(ctx, models.Admin{FullName: "Other", Email: "ROOT@church.org"}); !errors.Is(err, adminstore.ErrDuplicateEmail) {
		t.Errorf("duplicate: got %v", err)
	}

	names, err := store.Names(ctx, []primitive.ObjectID{a.ID, primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if len(names) != 1 || names[a.ID] != "Root Admin" {
		t.Errorf("names: got %v", names)
	}

	active, _ := store.IsActive(ctx, a.ID)
	if !active {
		t.Error("expected active admin")
	}
	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, adminstore.ErrNotFound) {
		t.Errorf("GetByID missing: got %v", err)
	}
}
