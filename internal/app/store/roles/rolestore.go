package rolestore

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/mediateam/internal/app/system/apperr"
	"github.com/dalemusser/mediateam/internal/app/system/normalize"
	"github.com/dalemusser/mediateam/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrDuplicateRoleName = apperr.New(apperr.ErrConflict, "A role with this name already exists")
	ErrNotFound          = apperr.New(apperr.ErrNotFound, "Role not found")
	errEmptySlug         = apperr.New(apperr.ErrInvalid, "role name must contain letters or digits")
)

// Slugify derives a URL-safe slug from a role name: folded to lowercase
// ASCII, runs of other characters collapsed to a single hyphen.
func Slugify(name string) string {
	folded := strings.ToLower(text.Fold(name))
	var b strings.Builder
	pendingDash := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	return b.String()
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("roles")}
}

// Create inserts a role. The slug is derived from the name when absent and
// is never recomputed afterwards.
func (s *Store) Create(ctx context.Context, r models.Role) (models.Role, error) {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	r.Name = normalize.Name(r.Name)
	if r.Slug == "" {
		r.Slug = Slugify(r.Name)
	}
	if r.Slug == "" {
		return models.Role{}, errEmptySlug
	}
	if r.Responsibilities == nil {
		r.Responsibilities = []string{}
	}
	r.Permissions = dedupe(r.Permissions)
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Role{}, ErrDuplicateRoleName
		}
		return models.Role{}, err
	}
	return r, nil
}

func dedupe(perms []models.Permission) []models.Permission {
	out := make([]models.Permission, 0, len(perms))
	seen := make(map[models.Permission]bool, len(perms))
	for _, p := range perms {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// GetByID loads a role.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Role, error) {
	var r models.Role
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// GetByIDs loads the roles with the given IDs, sorted by name.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Role, error) {
	out := []models.Role{}
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns all roles sorted by name; activeOnly hides inactive roles.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.Role, error) {
	q := bson.M{}
	if activeOnly {
		q["is_active"] = true
	}
	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Role{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update holds the mutable fields of a role. Nil fields are left alone.
type Update struct {
	Name             *string
	Description      *string
	Responsibilities []string
	Permissions      []models.Permission
	IsActive         *bool
}

// Update applies upd and returns the updated role. The slug is unchanged
// even when the name changes.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Role, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = normalize.Name(*upd.Name)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Responsibilities != nil {
		set["responsibilities"] = upd.Responsibilities
	}
	if upd.Permissions != nil {
		set["permissions"] = dedupe(upd.Permissions)
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	var r models.Role
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&r)
	switch {
	case err == mongo.ErrNoDocuments:
		return nil, ErrNotFound
	case wafflemongo.IsDup(err):
		return nil, ErrDuplicateRoleName
	case err != nil:
		return nil, err
	}
	return &r, nil
}

// Delete removes a role. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureDefaults inserts each role whose slug does not exist yet. Existing
// roles are left untouched. Returns how many were inserted.
func (s *Store) EnsureDefaults(ctx context.Context, roles []models.Role) (int, error) {
	inserted := 0
	for _, r := range roles {
		if r.Slug == "" {
			r.Slug = Slugify(r.Name)
		}
		now := time.Now().UTC()
		doc := bson.M{
			"_id":              primitive.NewObjectID(),
			"name":             r.Name,
			"description":      r.Description,
			"responsibilities": r.Responsibilities,
			"permissions":      dedupe(r.Permissions),
			"is_active":        true,
			"created_at":       now,
			"updated_at":       now,
		}
		res, err := s.c.UpdateOne(ctx,
			bson.M{"slug": r.Slug},
			bson.M{"$setOnInsert": doc},
			options.Update().SetUpsert(true))
		if err != nil {
			return inserted, err
		}
		if res.UpsertedCount > 0 {
			inserted++
		}
	}
	return inserted, nil
}
