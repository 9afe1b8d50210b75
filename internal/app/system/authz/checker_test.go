package authz_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/dalemusser/mediateam/internal/app/system/authz"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeSource struct {
	grants map[primitive.ObjectID][][]models.Permission
	err    error
}

func (f fakeSource) AssignedPermissions(_ context.Context, id primitive.ObjectID) ([][]models.Permission, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.grants[id], nil
}

var secretary = []models.Permission{
	models.PermViewCalendar,
	models.PermViewMinutes,
	models.PermUploadMinutes,
	models.PermEditMinutes,
}

type denialBody struct {
	Success             bool     `json:"success"`
	Message             string   `json:"message"`
	RequiredPermissions []string `json:"requiredPermissions"`
	UserPermissions     []string `json:"userPermissions"`
}

func serve(t *testing.T, mw func(http.Handler) http.Handler, p *auth.Principal) (*httptest.ResponseRecorder, authz.Set) {
	t.Helper()
	var seen authz.Set
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = authz.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest("GET", "/", nil)
	if p != nil {
		req = req.WithContext(auth.WithPrincipal(req.Context(), *p))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func decodeDenial(t *testing.T, rec *httptest.ResponseRecorder) denialBody {
	t.Helper()
	var b denialBody
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return b
}

func TestUnion_OrderAndDuplicates(t *testing.T) {
	a := authz.Union(secretary, []models.Permission{models.PermViewCalendar})
	b := authz.Union([]models.Permission{models.PermEditMinutes, models.PermViewCalendar}, secretary, secretary)

	if !reflect.DeepEqual(a.Sorted(), b.Sorted()) {
		t.Errorf("union differs: %v vs %v", a.Sorted(), b.Sorted())
	}
	if len(a) != 4 {
		t.Errorf("len: got %d, want 4", len(a))
	}
}

func TestSet_HasAny(t *testing.T) {
	s := authz.Union(secretary)
	tests := []struct {
		name     string
		required []models.Permission
		want     bool
	}{
		{"empty required", nil, true},
		{"one match", []models.Permission{models.PermDeleteMinutes, models.PermEditMinutes}, true},
		{"no match", []models.Permission{models.PermDeleteMinutes}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.HasAny(tt.required); got != tt.want {
				t.Errorf("HasAny: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequirePermission_SecretaryDeniedDelete(t *testing.T) {
	uid := primitive.NewObjectID()
	c := authz.NewChecker(fakeSource{grants: map[primitive.ObjectID][][]models.Permission{
		uid: {secretary},
	}}, zap.NewNop())

	rec, _ := serve(t, c.RequirePermission(models.PermDeleteMinutes), &auth.Principal{ID: uid, Kind: auth.KindUser})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want 403", rec.Code)
	}
	b := decodeDenial(t, rec)
	if b.Success {
		t.Error("expected success=false")
	}
	if b.Message != "You do not have permission to perform this action" {
		t.Errorf("message: got %q", b.Message)
	}
	if !reflect.DeepEqual(b.RequiredPermissions, []string{"delete_minutes"}) {
		t.Errorf("requiredPermissions: got %v", b.RequiredPermissions)
	}
	want := []string{"edit_minutes", "upload_minutes", "view_calendar", "view_minutes"}
	if !reflect.DeepEqual(b.UserPermissions, want) {
		t.Errorf("userPermissions: got %v, want %v", b.UserPermissions, want)
	}
}

func TestRequirePermission_NoAssignments(t *testing.T) {
	c := authz.NewChecker(fakeSource{}, zap.NewNop())
	rec, _ := serve(t, c.RequirePermission(models.PermViewCalendar), &auth.Principal{ID: primitive.NewObjectID(), Kind: auth.KindUser})

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want 403", rec.Code)
	}
	b := decodeDenial(t, rec)
	if b.UserPermissions == nil || len(b.UserPermissions) != 0 {
		t.Errorf("userPermissions: got %v, want empty list", b.UserPermissions)
	}
}

func TestRequirePermission_AllowedAttachesSet(t *testing.T) {
	uid := primitive.NewObjectID()
	c := authz.NewChecker(fakeSource{grants: map[primitive.ObjectID][][]models.Permission{
		uid: {secretary, {models.PermCreateEvents}},
	}}, zap.NewNop())

	rec, seen := serve(t, c.RequirePermission(models.PermCreateEvents, models.PermEditEvents), &auth.Principal{ID: uid, Kind: auth.KindUser})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204", rec.Code)
	}
	if len(seen) != 5 || !seen.Has(models.PermCreateEvents) {
		t.Errorf("context set: got %v", seen.Sorted())
	}
}

func TestRequirePermission_HidePermissions(t *testing.T) {
	uid := primitive.NewObjectID()
	c := authz.NewChecker(fakeSource{grants: map[primitive.ObjectID][][]models.Permission{
		uid: {secretary},
	}}, zap.NewNop())
	c.HidePermissions = true

	rec, _ := serve(t, c.RequirePermission(models.PermDeleteMinutes), &auth.Principal{ID: uid, Kind: auth.KindUser})
	var raw map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := raw["userPermissions"]; ok {
		t.Error("userPermissions should be omitted")
	}
}

func TestRequirePermission_SourceError(t *testing.T) {
	c := authz.NewChecker(fakeSource{err: errors.New("db down")}, zap.NewNop())
	rec, _ := serve(t, c.RequirePermission(models.PermViewCalendar), &auth.Principal{ID: primitive.NewObjectID(), Kind: auth.KindUser})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
}

func TestRequirePermission_NoPrincipal(t *testing.T) {
	c := authz.NewChecker(fakeSource{}, zap.NewNop())
	rec, _ := serve(t, c.RequirePermission(models.PermViewCalendar), nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestRequireAdminOr(t *testing.T) {
	c := authz.NewChecker(fakeSource{}, zap.NewNop())
	admin := &auth.Principal{ID: primitive.NewObjectID(), Kind: auth.KindAdmin}

	rec, _ := serve(t, c.RequireAdminOr(models.PermDeleteEvents), admin)
	if rec.Code != http.StatusNoContent {
		t.Errorf("admin via RequireAdminOr: got %d, want 204", rec.Code)
	}

	rec, _ = serve(t, c.RequirePermission(models.PermDeleteEvents), admin)
	if rec.Code != http.StatusForbidden {
		t.Errorf("admin via RequirePermission: got %d, want 403", rec.Code)
	}
}
