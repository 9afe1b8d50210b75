package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type stubVerifier struct {
	p   Principal
	err error
}

func (s stubVerifier) Verify(string) (Principal, error) { return s.p, s.err }

type stubAccounts struct {
	active bool
	err    error
}

func (s stubAccounts) IsActive(context.Context, Principal) (bool, error) { return s.active, s.err }

func okHandler(t *testing.T, want *Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := CurrentPrincipal(r)
		if !ok {
			t.Error("expected principal in context")
		}
		if want != nil && p != *want {
			t.Errorf("principal: got %+v, want %+v", p, *want)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var b struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Success {
		t.Error("expected success=false")
	}
	return b.Message
}

func TestRequireToken_NoHeader(t *testing.T) {
	m := NewMiddleware(stubVerifier{}, nil, zap.NewNop())
	rec := httptest.NewRecorder()
	m.RequireToken(okHandler(t, nil)).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	if msg := message(t, rec); msg != "Not authorized, no token" {
		t.Errorf("message: got %q", msg)
	}
}

func TestRequireToken_WrongScheme(t *testing.T) {
	m := NewMiddleware(stubVerifier{}, nil, zap.NewNop())
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec := httptest.NewRecorder()
	m.RequireToken(okHandler(t, nil)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestRequireToken_Invalid(t *testing.T) {
	m := NewMiddleware(stubVerifier{err: ErrInvalidToken}, nil, zap.NewNop())
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	m.RequireToken(okHandler(t, nil)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	if msg := message(t, rec); msg != "Not authorized, token failed" {
		t.Errorf("message: got %q", msg)
	}
}

func TestRequireToken_VerifierFailure(t *testing.T) {
	m := NewMiddleware(stubVerifier{err: errors.New("keystore offline")}, nil, zap.NewNop())
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := httptest.NewRecorder()
	m.RequireToken(okHandler(t, nil)).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
}

func TestRequireToken_AttachesPrincipal(t *testing.T) {
	tok, _ := NewTokens(testSecret, "mediateam", time.Hour)
	want := Principal{ID: primitive.NewObjectID(), Kind: KindUser, Email: "u@church.test"}
	raw, _, _ := tok.Issue(want)

	m := NewMiddleware(tok, nil, zap.NewNop())
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "bearer "+raw)
	rec := httptest.NewRecorder()
	m.RequireToken(okHandler(t, &want)).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want 204", rec.Code)
	}
}

func TestRequireToken_InactiveAccount(t *testing.T) {
	p := Principal{ID: primitive.NewObjectID(), Kind: KindUser}
	m := NewMiddleware(stubVerifier{p: p}, stubAccounts{active: false}, zap.NewNop())
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := httptest.NewRecorder()
	m.RequireToken(okHandler(t, nil)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name string
		p    *Principal
		want int
	}{
		{"no principal", nil, http.StatusUnauthorized},
		{"user", &Principal{ID: primitive.NewObjectID(), Kind: KindUser}, http.StatusForbidden},
		{"admin", &Principal{ID: primitive.NewObjectID(), Kind: KindAdmin}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.p != nil {
				req = req.WithContext(WithPrincipal(req.Context(), *tt.p))
			}
			rec := httptest.NewRecorder()
			RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
