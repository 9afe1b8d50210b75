package minutesstore

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

var ErrNotFound = apperr.New(apperr.ErrNotFound, "Minutes not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("minutes")}
}

// Create inserts meeting minutes.
func (s *Store) Create(ctx context.Context, m models.Minutes) (models.Minutes, error) {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	m.MeetingDate = m.MeetingDate.UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Minutes{}, err
	}
	return m, nil
}

// GetByID loads minutes.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Minutes, error) {
	var m models.Minutes
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns one page of minutes, most recent meeting first.
func (s *Store) List(ctx context.Context, skip, limit int64) ([]models.Minutes, int64, error) {
	total, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "meeting_date", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := []models.Minutes{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Replace overwrites the editable fields and returns the result.
func (s *Store) Replace(ctx context.Context, m models.Minutes) (*models.Minutes, error) {
	var out models.Minutes
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": m.ID}, bson.M{"$set": bson.M{
		"title":        m.Title,
		"meeting_date": m.MeetingDate.UTC(),
		"content":      m.Content,
		"attendees":    m.Attendees,
		"action_items": m.ActionItems,
		"updated_at":   time.Now().UTC(),
	}}, options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes minutes.
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

// Count returns the number of minutes documents.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
