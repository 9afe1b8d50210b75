// internal/app/store/activity/store.go
package activity

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

var ErrNotFound = apperr.New(apperr.ErrNotFound, "Activity record not found")

// Entry is an activity record with the acting admin's display name.
type Entry struct {
	models.AdminActivity `bson:",inline"`
	AdminName            string `bson:"admin_name" json:"adminName"`
}

// Filter narrows Recent. Zero values match everything.
type Filter struct {
	Action  models.ActivityAction
	AdminID *primitive.ObjectID
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if f.Action != "" {
		q["action"] = f.Action
	}
	if f.AdminID != nil {
		q["admin_id"] = *f.AdminID
	}
	return q
}

// Store manages admin activity records. Records are append-only.
type Store struct {
	c *mongo.Collection
}

// New creates a new activity Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admin_activities")}
}

// Insert appends one record.
func (s *Store) Insert(ctx context.Context, a models.AdminActivity) (models.AdminActivity, error) {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.AdminActivity{}, err
	}
	return a, nil
}

func withAdminName() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         "admins",
			"localField":   "admin_id",
			"foreignField": "_id",
			"as":           "admin",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"admin_name": bson.M{"$ifNull": bson.A{bson.M{"$first": "$admin.full_name"}, ""}},
		}}},
		{{Key: "$project", Value: bson.M{"admin": 0}}},
	}
}

// GetByID loads one record with its admin name.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*Entry, error) {
	pipe := mongo.Pipeline{{{Key: "$match", Value: bson.M{"_id": id}}}}
	pipe = append(pipe, withAdminName()...)
	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	var e Entry
	if err := cur.Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Recent returns one page of records, newest first, and the total count.
func (s *Store) Recent(ctx context.Context, f Filter, skip, limit int64) ([]Entry, int64, error) {
	q := f.query()
	total, err := s.c.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	pipe := mongo.Pipeline{
		{{Key: "$match", Value: q}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
	}
	pipe = append(pipe, withAdminName()...)
	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := []Entry{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ByAdmin returns one page of a single admin's records.
func (s *Store) ByAdmin(ctx context.Context, adminID primitive.ObjectID, skip, limit int64) ([]Entry, int64, error) {
	return s.Recent(ctx, Filter{AdminID: &adminID}, skip, limit)
}

// ActionCount is one row of the by-action breakdown.
type ActionCount struct {
	Action models.ActivityAction `bson:"_id" json:"action"`
	Count  int64                 `bson:"count" json:"count"`
}

// AdminCount is one row of the by-admin breakdown.
type AdminCount struct {
	AdminID   primitive.ObjectID `bson:"_id" json:"adminId"`
	AdminName string             `bson:"admin_name" json:"adminName"`
	Count     int64              `bson:"count" json:"count"`
}

// Stats aggregates the activity log.
type Stats struct {
	Total    int64         `json:"total"`
	Last24h  int64         `json:"last24h"`
	ByAction []ActionCount `json:"byAction"`
	ByAdmin  []AdminCount  `json:"byAdmin"`
}

// Stats computes totals and breakdowns as of now.
func (s *Store) Stats(ctx context.Context, now time.Time) (Stats, error) {
	var st Stats
	var err error

	if st.Total, err = s.c.CountDocuments(ctx, bson.M{}); err != nil {
		return Stats{}, err
	}
	if st.Last24h, err = s.c.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": now.Add(-24 * time.Hour)}}); err != nil {
		return Stats{}, err
	}

	st.ByAction = []ActionCount{}
	if err := s.aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$action", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}, &st.ByAction); err != nil {
		return Stats{}, err
	}

	st.ByAdmin = []AdminCount{}
	if err := s.aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$admin_id", "count": bson.M{"$sum": 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "admins",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "admin",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"admin_name": bson.M{"$ifNull": bson.A{bson.M{"$first": "$admin.full_name"}, ""}},
		}}},
		{{Key: "$project", Value: bson.M{"admin": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}, &st.ByAdmin); err != nil {
		return Stats{}, err
	}
	return st, nil
}

func (s *Store) aggregate(ctx context.Context, pipe mongo.Pipeline, out any) error {
	cur, err := s.c.Aggregate(ctx, pipe, options.Aggregate())
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return cur.All(ctx, out)
}
