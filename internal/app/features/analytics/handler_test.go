package analytics_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/mediateam/internal/app/features/analytics"
	submissionstore "github.com/dalemusser/mediateam/internal/app/store/submissions"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/dalemusser/mediateam/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestServeOverview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := analytics.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateSubmission(ctx, "Applicant One", "one@example.com")
	member := fx.CreateUser(ctx, "Member", "m@example.com", models.UserStatusActive)
	admin := fx.CreateAdmin(ctx, "Admin", "admin@example.com")
	role := fx.CreateRole(ctx, "Photographer", models.PermViewCalendar)
	fx.AssignRole(ctx, member.ID, role.ID, admin.ID)

	now := time.Now().UTC()
	_, err := db.Collection("events").InsertMany(ctx, []any{
		models.Event{Title: "Past", EventType: "service", StartAt: now.Add(-24 * time.Hour), CreatedBy: admin.ID},
		models.Event{Title: "Next", EventType: "service", StartAt: now.Add(24 * time.Hour), CreatedBy: admin.ID},
	})
	if err != nil {
		t.Fatalf("insert events: %v", err)
	}

	rec := testutil.NewRecorder()
	h.ServeOverview(rec, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/overview", testutil.AdminPrincipal(), nil))
	rec.AssertStatus(t, http.StatusOK)

	var out struct {
		Submissions map[string]int64 `json:"submissions"`
		Users       map[string]int64 `json:"users"`
		Roles       []struct {
			Name    string `json:"name"`
			Members int64  `json:"memberCount"`
		} `json:"roles"`
		UpcomingEvents int64 `json:"upcomingEvents"`
		Minutes        int64 `json:"minutes"`
	}
	rec.Decode(t, &out)

	if out.Submissions["pending"] != 1 || out.Submissions["approved"] != 0 {
		t.Errorf("submissions: got %v", out.Submissions)
	}
	if _, ok := out.Submissions["rejected"]; !ok {
		t.Error("rejected status missing from submission counts")
	}
	if out.Users["pending"] != 1 || out.Users["active"] != 1 || out.Users["suspended"] != 0 {
		t.Errorf("users: got %v", out.Users)
	}
	if len(out.Roles) != 1 || out.Roles[0].Name != "Photographer" || out.Roles[0].Members != 1 {
		t.Errorf("roles: got %+v", out.Roles)
	}
	if out.UpcomingEvents != 1 {
		t.Errorf("upcomingEvents: got %d, want 1", out.UpcomingEvents)
	}
	if out.Minutes != 0 {
		t.Errorf("minutes: got %d, want 0", out.Minutes)
	}
}

func TestServeSubmissionTrend(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := analytics.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s, _ := fx.CreateSubmission(ctx, "Old", "old@example.com")
	fx.CreateSubmission(ctx, "New", "new@example.com")
	now := time.Now().UTC()
	twoMonthsAgo := time.Date(now.Year(), now.Month()-2, 15, 12, 0, 0, 0, time.UTC)
	if _, err := db.Collection("submissions").UpdateByID(ctx, s.ID, bson.M{"$set": bson.M{"created_at": twoMonthsAgo}}); err != nil {
		t.Fatalf("backdate: %v", err)
	}

	rec := testutil.NewRecorder()
	h.ServeSubmissionTrend(rec, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/submissions/trend?months=3", testutil.AdminPrincipal(), nil))
	rec.AssertStatus(t, http.StatusOK)

	var points []submissionstore.MonthCount
	rec.Decode(t, &points)
	if len(points) != 3 {
		t.Fatalf("points: got %d, want 3", len(points))
	}
	if points[0].Count != 1 || points[1].Count != 0 || points[2].Count != 1 {
		t.Errorf("counts: got %+v", points)
	}
}

func TestServeSubmissionTrend_BadMonths(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := analytics.NewHandler(db, zap.NewNop())

	for _, q := range []string{"0", "25", "abc"} {
		rec := testutil.NewRecorder()
		h.ServeSubmissionTrend(rec, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/submissions/trend?months="+q, testutil.AdminPrincipal(), nil))
		rec.AssertStatus(t, http.StatusBadRequest)
	}
}
