package eventstore

import (
	"context"
	"time"

	"github.com/dalemusser/mediateam/internal/app/system/apperr"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = apperr.New(apperr.ErrNotFound, "Event not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

// Create inserts an event.
func (s *Store) Create(ctx context.Context, ev models.Event) (models.Event, error) {
	if ev.ID.IsZero() {
		ev.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	ev.StartAt = ev.StartAt.UTC()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, ev); err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

// GetByID loads an event.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var ev models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ev); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// Range bounds List by start time; nil ends are open.
type Range struct {
	From *time.Time
	To   *time.Time
}

// List returns one page of events ordered by start time.
func (s *Store) List(ctx context.Context, r Range, skip, limit int64) ([]models.Event, int64, error) {
	q := bson.M{}
	if r.From != nil || r.To != nil {
		cond := bson.M{}
		if r.From != nil {
			cond["$gte"] = r.From.UTC()
		}
		if r.To != nil {
			cond["$lte"] = r.To.UTC()
		}
		q["start_at"] = cond
	}
	total, err := s.c.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	cur, err := s.c.Find(ctx, q, options.Find().
		SetSort(bson.D{{Key: "start_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := []models.Event{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Replace overwrites the editable fields of an event and returns it.
func (s *Store) Replace(ctx context.Context, ev models.Event) (*models.Event, error) {
	var out models.Event
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": ev.ID}, bson.M{"$set": bson.M{
		"title":       ev.Title,
		"description": ev.Description,
		"location":    ev.Location,
		"event_type":  ev.EventType,
		"start_at":    ev.StartAt.UTC(),
		"end_at":      ev.EndAt,
		"updated_at":  time.Now().UTC(),
	}}, options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an event.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountUpcoming counts events starting at or after now.
func (s *Store) CountUpcoming(ctx context.Context, now time.Time) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"start_at": bson.M{"$gte": now.UTC()}})
}
