package authz

import (
	"context"
	"sort"

	"github.com/dalemusser/mediateam/internal/domain/models"
)

// Set is an unordered, duplicate-free collection of permissions.
type Set map[models.Permission]struct{}

// Union merges permission lists into one set. Order and repetition in the
// inputs do not matter.
func Union(lists ...[]models.Permission) Set {
	s := make(Set)
	for _, list := range lists {
		for _, p := range list {
			s[p] = struct{}{}
		}
	}
	return s
}

// Has reports whether p is in the set.
func (s Set) Has(p models.Permission) bool {
	_, ok := s[p]
	return ok
}

// HasAny reports whether the set intersects required. An empty required
// list is satisfied by any set.
func (s Set) HasAny(required []models.Permission) bool {
	if len(required) == 0 {
		return true
	}
	for _, p := range required {
		if s.Has(p) {
			return true
		}
	}
	return false
}

// Sorted returns the set as a sorted slice.
func (s Set) Sorted() []models.Permission {
	out := make([]models.Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type ctxKey struct{}

// WithPermissions returns a copy of ctx carrying the resolved set.
func WithPermissions(ctx context.Context, s Set) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the set attached by the checker middleware.
func FromContext(ctx context.Context) (Set, bool) {
	s, ok := ctx.Value(ctxKey{}).(Set)
	return s, ok
}
