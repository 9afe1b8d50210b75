package auditlog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/mediateam/internal/app/system/auditlog"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolvers_Resolve(t *testing.T) {
	eventID := primitive.NewObjectID()
	rs := auditlog.Resolvers{
		models.TargetEvent: func(_ context.Context, id primitive.ObjectID) (any, error) {
			return models.Event{ID: id, Title: "Rehearsal"}, nil
		},
	}

	got, err := rs.Resolve(context.Background(), auditlog.TargetOf(models.TargetEvent, eventID))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ev, ok := got.(models.Event); !ok || ev.ID != eventID {
		t.Errorf("got %#v", got)
	}

	got, err = rs.Resolve(context.Background(), auditlog.SystemTarget())
	if err != nil || got != nil {
		t.Errorf("system target: got (%v, %v), want (nil, nil)", got, err)
	}

	_, err = rs.Resolve(context.Background(), auditlog.TargetOf(models.TargetRole, primitive.NewObjectID()))
	if !errors.Is(err, auditlog.ErrNoResolver) {
		t.Errorf("missing resolver: got %v", err)
	}

	_, err = rs.Resolve(context.Background(), models.Target{Kind: "widget"})
	if !errors.Is(err, auditlog.ErrNoResolver) {
		t.Errorf("unknown kind: got %v", err)
	}
}
