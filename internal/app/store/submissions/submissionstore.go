package submissionstore

import (
	"context"
	"time"

	"github.com/dalemusser/mediateam/internal/app/system/apperr"
	"github.com/dalemusser/mediateam/internal/app/system/normalize"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound        = apperr.New(apperr.ErrNotFound, "Submission not found")
	ErrAlreadyReviewed = apperr.New(apperr.ErrConflict, "Submission has already been reviewed")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("submissions")}
}

// Create inserts a pending submission.
func (s *Store) Create(ctx context.Context, sub models.Submission) (models.Submission, error) {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	sub.FullName = normalize.Name(sub.FullName)
	sub.Email = normalize.Email(sub.Email)
	sub.Phone = normalize.Phone(sub.Phone)
	sub.MinistryAreas = normalize.List(sub.MinistryAreas)
	sub.Availability = normalize.List(sub.Availability)
	sub.Status = models.SubmissionPending
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		return models.Submission{}, err
	}
	return sub, nil
}

// GetByID loads a submission.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error) {
	var sub models.Submission
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// List returns one page of submissions, newest first, optionally by status.
func (s *Store) List(ctx context.Context, status string, skip, limit int64) ([]models.Submission, int64, error) {
	q := bson.M{}
	if status != "" {
		q["status"] = status
	}
	total, err := s.c.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	cur, err := s.c.Find(ctx, q, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := []models.Submission{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Review moves a pending submission to status (approved or rejected) and
// returns the updated record. A submission can be reviewed once.
func (s *Store) Review(ctx context.Context, id primitive.ObjectID, status string, reviewer primitive.ObjectID, notes string) (*models.Submission, error) {
	now := time.Now().UTC()
	var sub models.Submission
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.SubmissionPending},
		bson.M{"$set": bson.M{
			"status":       status,
			"review_notes": notes,
			"reviewed_by":  reviewer,
			"reviewed_at":  now,
			"updated_at":   now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&sub)
	if err == nil {
		return &sub, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}
	if _, gerr := s.GetByID(ctx, id); gerr != nil {
		return nil, gerr
	}
	return nil, ErrAlreadyReviewed
}

// LinkUser records the portal account created for a submission.
func (s *Store) LinkUser(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"user_id": userID}})
	return err
}

// Delete removes a submission. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByStatus returns the number of submissions in each status.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "n": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]int64{}
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			N      int64  `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.Status] = row.N
	}
	return out, cur.Err()
}

// MonthCount is the number of submissions received in one calendar month.
type MonthCount struct {
	Year  int   `bson:"year" json:"year"`
	Month int   `bson:"month" json:"month"`
	Count int64 `bson:"count" json:"count"`
}

// MonthlyTrend counts submissions per UTC month since since, oldest first.
func (s *Store) MonthlyTrend(ctx context.Context, since time.Time) ([]MonthCount, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$created_at"},
				"month": bson.M{"$month": "$created_at"},
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":   0,
			"year":  "$_id.year",
			"month": "$_id.month",
			"count": 1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []MonthCount{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Each calls fn for every submission, newest first.
func (s *Store) Each(ctx context.Context, fn func(models.Submission) error) error {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var sub models.Submission
		if err := cur.Decode(&sub); err != nil {
			return err
		}
		if err := fn(sub); err != nil {
			return err
		}
	}
	return cur.Err()
}
