// internal/app/store/userroles/userrolestore.go
package userrolestore

import (
	"context"
	"time"

	"github.com/dalemusser/mediateam/internal/app/system/apperr"
	"github.com/dalemusser/mediateam/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateAssignment is returned when the user already holds the role.
	// The unique (user_id, role_id) index decides concurrent attempts.
	ErrDuplicateAssignment = apperr.New(apperr.ErrConflict, "User already has this role")
	ErrNotFound            = apperr.New(apperr.ErrNotFound, "Role assignment not found")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("user_roles")}
}

// Assign links a user to a role.
func (s *Store) Assign(ctx context.Context, ur models.UserRole) (models.UserRole, error) {
	if ur.ID.IsZero() {
		ur.ID = primitive.NewObjectID()
	}
	if ur.AssignedAt.IsZero() {
		ur.AssignedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, ur); err != nil {
		if wafflemongo.IsDup(err) {
			return models.UserRole{}, ErrDuplicateAssignment
		}
		return models.UserRole{}, err
	}
	return ur, nil
}

// Unassign removes the (user, role) link.
func (s *Store) Unassign(ctx context.Context, userID, roleID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID, "role_id": roleID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) find(ctx context.Context, q bson.M) ([]models.UserRole, error) {
	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "assigned_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.UserRole{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser returns a user's assignments, oldest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.UserRole, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

// ListByRole returns a role's assignments, oldest first.
func (s *Store) ListByRole(ctx context.Context, roleID primitive.ObjectID) ([]models.UserRole, error) {
	return s.find(ctx, bson.M{"role_id": roleID})
}

// DeleteByRole removes every assignment of a role.
func (s *Store) DeleteByRole(ctx context.Context, roleID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"role_id": roleID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByUser removes every assignment held by a user.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AssignedPermissions returns the permission list of each active role the
// user is assigned, one entry per assignment.
func (s *Store) AssignedPermissions(ctx context.Context, userID primitive.ObjectID) ([][]models.Permission, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "roles",
			"localField":   "role_id",
			"foreignField": "_id",
			"as":           "role",
		}}},
		{{Key: "$unwind", Value: "$role"}},
		{{Key: "$match", Value: bson.M{"role.is_active": true}}},
		{{Key: "$project", Value: bson.M{"_id": 0, "permissions": "$role.permissions"}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out [][]models.Permission
	for cur.Next(ctx) {
		var row struct {
			Permissions []models.Permission `bson:"permissions"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		if row.Permissions == nil {
			row.Permissions = []models.Permission{}
		}
		out = append(out, row.Permissions)
	}
	return out, cur.Err()
}

// MemberCounts returns the number of assignments per role.
func (s *Store) MemberCounts(ctx context.Context) (map[primitive.ObjectID]int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$role_id", "n": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[primitive.ObjectID]int64{}
	for cur.Next(ctx) {
		var row struct {
			RoleID primitive.ObjectID `bson:"_id"`
			N      int64              `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.RoleID] = row.N
	}
	return out, cur.Err()
}
