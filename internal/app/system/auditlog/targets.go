package auditlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoResolver is returned when a target kind has no registered resolver.
var ErrNoResolver = errors.New("no resolver for target kind")

// ResolveFunc loads the record an activity target points at.
type ResolveFunc func(ctx context.Context, id primitive.ObjectID) (any, error)

// Resolvers maps each target kind to the collection lookup that serves it.
type Resolvers map[models.TargetKind]ResolveFunc

// Resolve loads t's record. System targets and targets without an ID
// resolve to nil.
func (rs Resolvers) Resolve(ctx context.Context, t models.Target) (any, error) {
	if !t.Kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrNoResolver, t.Kind)
	}
	if t.Kind == models.TargetSystem || t.ID == nil {
		return nil, nil
	}
	fn, ok := rs[t.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoResolver, t.Kind)
	}
	return fn(ctx, *t.ID)
}
