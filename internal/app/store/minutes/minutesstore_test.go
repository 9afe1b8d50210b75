package minutesstore_test

import (
	"errors"
	"testing"
	"time"

	minutesstore "github.com/dalemusser/mediateam/internal/app/store/minutes"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/dalemusser/mediateam/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := minutesstore.New(db)

	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	older, err := store.Create(ctx, models.Minutes{Title: "January", MeetingDate: jan, Content: "<p>a</p>", UploadedBy: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.Create(ctx, models.Minutes{Title: "February", MeetingDate: feb, Content: "<p>b</p>"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, total, err := store.List(ctx, 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || list[0].Title != "February" {
		t.Errorf("order: got total=%d first=%q", total, list[0].Title)
	}

	older.ActionItems = []string{"Buy cables"}
	got, err := store.Replace(ctx, older)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if len(got.ActionItems) != 1 {
		t.Errorf("action items: got %v", got.ActionItems)
	}

	if err := store.Delete(ctx, older.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.GetByID(ctx, older.ID); !errors.Is(err, minutesstore.ErrNotFound) {
		t.Errorf("GetByID after delete: got %v", err)
	}
	if n, _ := store.Count(ctx); n != 1 {
		t.Errorf("Count: got %d", n)
	}
}
