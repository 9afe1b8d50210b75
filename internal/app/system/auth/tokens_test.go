package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret-0123456789abcdef0123456789"

func newTestTokens(t *testing.T) *Tokens {
	t.Helper()
	tok, err := NewTokens(testSecret, "mediateam", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	return tok
}

func TestNewTokens_RejectsBadConfig(t *testing.T) {
	if _, err := NewTokens("", "x", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := NewTokens(testSecret, "x", 0); err == nil {
		t.Error("expected error for zero ttl")
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	tok := newTestTokens(t)
	want := Principal{ID: primitive.NewObjectID(), Kind: KindAdmin, Email: "admin@church.test", Name: "Admin"}

	raw, exp, err := tok.Issue(want)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Errorf("expiry %v is not in the future", exp)
	}

	got, err := tok.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != want {
		t.Errorf("principal: got %+v, want %+v", got, want)
	}
}

func TestVerify_Empty(t *testing.T) {
	_, err := newTestTokens(t).Verify("")
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("got %v, want ErrNoToken", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	other, _ := NewTokens("another-secret-0123456789abcdef012345", "mediateam", time.Hour)
	raw, _, err := other.Issue(Principal{ID: primitive.NewObjectID(), Kind: KindUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = newTestTokens(t).Verify(raw)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	tok := newTestTokens(t)
	tok.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, _, err := tok.Issue(Principal{ID: primitive.NewObjectID(), Kind: KindUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tok.now = time.Now
	_, err = tok.Verify(raw)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerify_WrongAlgorithm(t *testing.T) {
	claims := Claims{
		Kind: KindAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   primitive.NewObjectID().Hex(),
			Issuer:    "mediateam",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = newTestTokens(t).Verify(raw)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerify_BadSubject(t *testing.T) {
	claims := Claims{
		Kind: KindUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-an-object-id",
			Issuer:    "mediateam",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))

	_, err := newTestTokens(t).Verify(raw)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerify_NilVerifier(t *testing.T) {
	var tok *Tokens
	_, err := tok.Verify("anything")
	if !errors.Is(err, ErrVerifier) {
		t.Errorf("got %v, want ErrVerifier", err)
	}
}
