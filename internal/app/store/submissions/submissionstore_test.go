package submissionstore_test

import (
	"errors"
	"testing"
	"time"

	submissionstore "github.com/dalemusser/mediateam/internal/app/store/submissions"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/dalemusser/mediateam/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateAndReview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := submissionstore.New(db)

	sub, err := store.Create(ctx, models.Submission{
		FullName:      "Sam Lens",
		Email:         "Sam@Example.com",
		Phone:         "555-0101",
		MinistryAreas: []string{"photography", "photography", "videography"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.Status != models.SubmissionPending {
		t.Errorf("status: got %q", sub.Status)
	}
	if len(sub.MinistryAreas) != 2 {
		t.Errorf("areas not deduplicated: %v", sub.MinistryAreas)
	}

	admin := primitive.NewObjectID()
	reviewed, err := store.Review(ctx, sub.ID, models.SubmissionApproved, admin, "welcome")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if reviewed.Status != models.SubmissionApproved || reviewed.ReviewedBy == nil || *reviewed.ReviewedBy != admin {
		t.Errorf("reviewed: got %+v", reviewed)
	}

	_, err = store.Review(ctx, sub.ID, models.SubmissionRejected, admin, "")
	if !errors.Is(err, submissionstore.ErrAlreadyReviewed) {
		t.Errorf("second review: got %v, want ErrAlreadyReviewed", err)
	}

	_, err = store.Review(ctx, primitive.NewObjectID(), models.SubmissionApproved, admin, "")
	if !errors.Is(err, submissionstore.ErrNotFound) {
		t.Errorf("missing: got %v, want ErrNotFound", err)
	}
}

func TestStore_ListAndCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := submissionstore.New(db)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if _, err := store.Create(ctx, models.Submission{FullName: "X", Email: email, Phone: "1"}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	first, _, _ := store.List(ctx, "", 0, 1)
	if _, err := store.Review(ctx, first[0].ID, models.SubmissionRejected, primitive.NewObjectID(), "no"); err != nil {
		t.Fatalf("Review: %v", err)
	}

	pending, total, err := store.List(ctx, models.SubmissionPending, 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(pending) != 2 {
		t.Errorf("pending: got total=%d len=%d", total, len(pending))
	}

	counts, err := store.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[models.SubmissionPending] != 2 || counts[models.SubmissionRejected] != 1 {
		t.Errorf("counts: got %v", counts)
	}

	trend, err := store.MonthlyTrend(ctx, time.Now().AddDate(0, -1, 0))
	if err != nil {
		t.Fatalf("MonthlyTrend: %v", err)
	}
	var sum int64
	for _, m := range trend {
		sum += m.Count
	}
	if sum != 3 {
		t.Errorf("trend total: got %d, want 3", sum)
	}
}
