package events_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/mediateam/internal/app/features/events"
	activitystore "github.com/dalemusser/mediateam/internal/app/store/activity"
	notificationstore "github.com/dalemusser/mediateam/internal/app/store/notifications"
	userrolestore "github.com/dalemusser/mediateam/internal/app/store/userroles"
	"github.com/dalemusser/mediateam/internal/app/system/auditlog"
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/dalemusser/mediateam/internal/app/system/authz"
	"github.com/dalemusser/mediateam/internal/app/system/notify"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/dalemusser/mediateam/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*events.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	dispatcher := notify.New(notificationstore.New(db))
	activity := auditlog.New(activitystore.New(db), logger, auditlog.Config{Mode: auditlog.ModeDB})
	return events.NewHandler(db, dispatcher, activity, logger), testutil.NewFixtures(t, db)
}

func eventBody(title string, start time.Time) map[string]any {
	return map[string]any{
		"title":       title,
		"description": `<p>Bring cameras</p><script>alert(1)</script>`,
		"eventType":   "rehearsal",
		"startAt":     start.Format(time.RFC3339),
	}
}

func TestHandleCreate_NotifiesActiveMembers(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		fx.CreateUser(ctx, "Member", email, models.UserStatusActive)
	}
	fx.CreateUser(ctx, "Applicant", "p@example.com", models.UserStatusPending)
	admin := testutil.AdminPrincipal()

	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/", admin,
		eventBody("Easter rehearsal", time.Now().Add(48*time.Hour))))
	rec.AssertStatus(t, http.StatusCreated)

	var ev models.Event
	rec.Decode(t, &ev)
	if ev.Description != "<p>Bring cameras</p>" {
		t.Errorf("description: got %q, want script removed", ev.Description)
	}

	cur, err := fx.DB().Collection("notifications").Find(ctx, bson.M{})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	var ns []models.Notification
	if err := cur.All(ctx, &ns); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ns) != 3 {
		t.Fatalf("notifications: got %d, want 3", len(ns))
	}
	for _, n := range ns {
		if n.Type != models.NotifyEventCreated || n.IsRead {
			t.Errorf("notification: got type %q read %v, want unread event_created", n.Type, n.IsRead)
		}
	}

	c, _ := fx.DB().Collection("admin_activities").CountDocuments(ctx, bson.M{"action": models.ActionEventCreated, "target.kind": models.TargetEvent, "target.id": ev.ID})
	if c != 1 {
		t.Errorf("event_created activity: got %d, want 1", c)
	}
}

func TestHandleCreate_MemberNotNotifiedOfOwnEvent(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "Creator", "creator@example.com", models.UserStatusActive)
	fx.CreateUser(ctx, "Other", "other@example.com", models.UserStatusActive)

	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/", testutil.UserPrincipal(creator.ID),
		eventBody("Sunday service", time.Now().Add(24*time.Hour))))
	rec.AssertStatus(t, http.StatusCreated)

	n, _ := fx.DB().Collection("notifications").CountDocuments(ctx, bson.M{"user_id": creator.ID})
	if n != 0 {
		t.Errorf("creator notified of own event")
	}
	a, _ := fx.DB().Collection("admin_activities").CountDocuments(ctx, bson.M{})
	if a != 0 {
		t.Errorf("activity recorded for a non-admin actor")
	}
}

func TestHandleCreate_Validation(t *testing.T) {
	h, _ := newTestHandler(t)
	start := time.Now().Add(time.Hour)

	badType := eventBody("Party", start)
	badType["eventType"] = "party"
	badEnd := eventBody("Backwards", start)
	badEnd["endAt"] = start.Add(-time.Hour).Format(time.RFC3339)

	for name, body := range map[string]map[string]any{"bad type": badType, "end before start": badEnd} {
		rec := testutil.NewRecorder()
		h.HandleCreate(rec, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/", testutil.AdminPrincipal(), body))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", name, rec.Code)
		}
	}
}

func TestHandleUpdateAndDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fx.CreateUser(ctx, "Member", "m@example.com", models.UserStatusActive)
	ev, err := h.Events.Create(ctx, models.Event{Title: "Old", EventType: "meeting", StartAt: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	admin := testutil.AdminPrincipal()

	req := testutil.NewAuthenticatedRequest(t, http.MethodPut, "/x", admin, eventBody("New", time.Now().Add(2*time.Hour)))
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec, testutil.WithChiURLParam(req, "id", ev.ID.Hex()))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"title":"New"`)

	n, _ := fx.DB().Collection("notifications").CountDocuments(ctx, bson.M{"user_id": member.ID, "type": models.NotifyEventUpdated})
	if n != 1 {
		t.Errorf("event_updated notifications: got %d, want 1", n)
	}

	for _, want := range []int{http.StatusOK, http.StatusNotFound} {
		req := testutil.NewAuthenticatedRequest(t, http.MethodDelete, "/x", admin, nil)
		rec := testutil.NewRecorder()
		h.HandleDelete(rec, testutil.WithChiURLParam(req, "id", ev.ID.Hex()))
		rec.AssertStatus(t, want)
	}
}

func TestRoutes_PermissionDenied(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tokens, err := auth.NewTokens("0123456789abcdef0123456789abcdef", "test", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	checker := authz.NewChecker(userrolestore.New(fx.DB()), zap.NewNop())
	router := events.Routes(h, auth.NewMiddleware(tokens, nil, zap.NewNop()), checker)

	u := fx.CreateUser(ctx, "Viewer", "v@example.com", models.UserStatusActive)
	role := fx.CreateRole(ctx, "Viewer", models.PermViewCalendar)
	fx.AssignRole(ctx, u.ID, role.ID, testutil.AdminPrincipal().ID)
	token, _, err := tokens.Issue(testutil.UserPrincipal(u.ID))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name   string
		method string
		body   any
		want   int
	}{
		{"view allowed", http.MethodGet, nil, http.StatusOK},
		{"create denied", http.MethodPost, eventBody("Nope", time.Now().Add(time.Hour)), http.StatusForbidden},
	}
	for _, tt := range tests {
		req := testutil.NewJSONRequest(t, tt.method, "/", tt.body)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s: got %d, want %d (%s)", tt.name, rec.Code, tt.want, rec.Body.String())
		}
		if tt.want == http.StatusForbidden {
			rec.AssertContains(t, `"requiredPermissions":["create_events"]`)
			rec.AssertContains(t, `"userPermissions":["view_calendar"]`)
		}
	}
}
