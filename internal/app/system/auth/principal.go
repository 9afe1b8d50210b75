package auth

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind says which credential store a principal was authenticated against.
type Kind string

const (
	KindUser  Kind = "user"
	KindAdmin Kind = "admin"
)

// Principal is the identity extracted from a verified token. It is rebuilt
// on every request and never persisted.
type Principal struct {
	ID    primitive.ObjectID
	Kind  Kind
	Email string
	Name  string
}

// IsAdmin reports whether the principal is an administrator.
func (p Principal) IsAdmin() bool { return p.Kind == KindAdmin }

type ctxKey string

const principalKey ctxKey = "principal"

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext returns the principal stored in ctx, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// CurrentPrincipal returns the principal attached by RequireToken.
func CurrentPrincipal(r *http.Request) (Principal, bool) {
	return FromContext(r.Context())
}
