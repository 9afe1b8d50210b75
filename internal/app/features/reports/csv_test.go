package reports_test

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/mediateam/internal/app/features/reports"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/dalemusser/mediateam/internal/testutil"
	"go.uber.org/zap"
)

func readCSV(t *testing.T, body string) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	return rows
}

func TestServeSubmissionsCSV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := reports.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateSubmission(ctx, "=HYPERLINK(\"x\")", "one@example.com")
	fx.CreateSubmission(ctx, "Grace Hopper", "two@example.com")

	rec := testutil.NewRecorder()
	h.ServeSubmissionsCSV(rec, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/submissions.csv", testutil.AdminPrincipal(), nil))
	rec.AssertStatus(t, http.StatusOK)

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type: got %q", ct)
	}
	rows := readCSV(t, rec.Body.String())
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want header + 2", len(rows))
	}
	if rows[0][1] != "Full Name" {
		t.Errorf("header: got %v", rows[0])
	}
	found := false
	for _, row := range rows[1:] {
		if strings.HasPrefix(row[1], "'=") {
			found = true
		}
		if row[6] != models.SubmissionPending {
			t.Errorf("status: got %q", row[6])
		}
	}
	if !found {
		t.Error("formula cell was not neutralized")
	}
}

func TestServeUsersCSV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := reports.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "Zed", "zed@example.com", models.UserStatusActive)
	fx.CreateUser(ctx, "Amy", "amy@example.com", models.UserStatusSuspended)

	rec := testutil.NewRecorder()
	h.ServeUsersCSV(rec, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/users.csv", testutil.AdminPrincipal(), nil))
	rec.AssertStatus(t, http.StatusOK)

	rows := readCSV(t, rec.Body.String())
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(rows))
	}
	if rows[1][1] != "Amy" || rows[2][1] != "Zed" {
		t.Errorf("order: got %q then %q, want Amy then Zed", rows[1][1], rows[2][1])
	}
	if rows[1][4] != models.UserStatusSuspended {
		t.Errorf("status: got %q", rows[1][4])
	}
}
