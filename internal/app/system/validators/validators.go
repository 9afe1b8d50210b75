// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
//
// Validators use validationLevel "moderate": documents that already violate
// a schema are not rejected on unrelated updates.
func EnsureAll(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll, log); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				log.Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
			return
		}
		log.Debug("validator ensured", zap.String("collection", coll))
	}

	// Accounts and applications
	ensure("users", usersSchema())
	ensure("admins", adminsSchema())
	ensure("submissions", submissionsSchema())

	// Roles and assignments
	ensure("roles", rolesSchema())
	ensure("user_roles", userRolesSchema())

	// Notifications and the audit trail
	ensure("notifications", notificationsSchema())
	ensure("admin_activities", activitiesSchema())

	// Team content
	ensure("events", eventsSchema())
	ensure("minutes", minutesSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection idempotently makes sure name exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string, log *zap.Logger) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		log.Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	log.Info("created collection", zap.String("collection", name))
	return true, nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	return db.RunCommand(ctx, cmd).Decode(&out)
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func enum[T ~string](vals ...T) bson.M {
	a := make(bson.A, 0, len(vals))
	for _, v := range vals {
		a = append(a, string(v))
	}
	return bson.M{"enum": a}
}

func object(required bson.A, props bson.M) bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":   "object",
			"required":   required,
			"properties": props,
		},
	}
}

func usersSchema() bson.M {
	return object(bson.A{"full_name", "email", "password_hash", "status"}, bson.M{
		"full_name":     nonBlank,
		"full_name_ci":  bson.M{"bsonType": "string"},
		"email":         nonBlank,
		"password_hash": nonBlank,
		"status": enum(models.UserStatusPending, models.UserStatusActive,
			models.UserStatusRejected, models.UserStatusSuspended),
		"submission_id": bson.M{"bsonType": "objectId"},
	})
}

func adminsSchema() bson.M {
	return object(bson.A{"full_name", "email", "password_hash", "status"}, bson.M{
		"full_name":     nonBlank,
		"email":         nonBlank,
		"password_hash": nonBlank,
		"status":        enum("active", "disabled"),
	})
}

func submissionsSchema() bson.M {
	return object(bson.A{"full_name", "email", "ministry_areas", "status", "created_at"}, bson.M{
		"full_name": nonBlank,
		"email":     nonBlank,
		"ministry_areas": bson.M{
			"bsonType": "array",
			"minItems": 1,
			"items":    enum(models.MinistryAreas...),
		},
		"status":     enum(models.SubmissionPending, models.SubmissionApproved, models.SubmissionRejected),
		"user_id":    bson.M{"bsonType": "objectId"},
		"created_at": bson.M{"bsonType": "date"},
	})
}

func rolesSchema() bson.M {
	return object(bson.A{"name", "slug", "permissions", "is_active"}, bson.M{
		"name": nonBlank,
		"slug": nonBlank,
		"permissions": bson.M{
			"bsonType": "array",
			"items":    enum(models.AllPermissions...),
		},
		"is_active": bson.M{"bsonType": "bool"},
	})
}

func userRolesSchema() bson.M {
	return object(bson.A{"user_id", "role_id", "assigned_by", "assigned_at"}, bson.M{
		"user_id":     bson.M{"bsonType": "objectId"},
		"role_id":     bson.M{"bsonType": "objectId"},
		"assigned_by": bson.M{"bsonType": "objectId"},
		"assigned_at": bson.M{"bsonType": "date"},
	})
}

func notificationsSchema() bson.M {
	return object(bson.A{"user_id", "type", "title", "message", "is_read", "created_at"}, bson.M{
		"user_id": bson.M{"bsonType": "objectId"},
		"type": enum(models.NotifyApplicationApproved, models.NotifyApplicationRejected,
			models.NotifyRoleAssigned, models.NotifyRoleRemoved,
			models.NotifyEventCreated, models.NotifyEventUpdated,
			models.NotifyMeetingUploaded, models.NotifyGeneral),
		"title":      bson.M{"bsonType": "string"},
		"message":    bson.M{"bsonType": "string"},
		"is_read":    bson.M{"bsonType": "bool"},
		"created_at": bson.M{"bsonType": "date"},
	})
}

func activitiesSchema() bson.M {
	return object(bson.A{"admin_id", "action", "target", "created_at"}, bson.M{
		"admin_id": bson.M{"bsonType": "objectId"},
		"action": enum(models.ActionApplicationApproved, models.ActionApplicationRejected,
			models.ActionApplicationDeleted, models.ActionEventCreated, models.ActionEventUpdated,
			models.ActionEventDeleted, models.ActionRoleAssigned, models.ActionRoleRemoved,
			models.ActionUserStatusChanged, models.ActionAdminLogin, models.ActionUserCreated),
		"target": bson.M{
			"bsonType": "object",
			"required": bson.A{"kind"},
			"properties": bson.M{
				"kind": enum(models.TargetRegistration, models.TargetEvent, models.TargetUser,
					models.TargetRole, models.TargetSystem),
				"id": bson.M{"bsonType": "objectId"},
			},
		},
		"created_at": bson.M{"bsonType": "date"},
	})
}

func eventsSchema() bson.M {
	return object(bson.A{"title", "event_type", "start_at", "created_by"}, bson.M{
		"title":      nonBlank,
		"event_type": enum(models.EventTypes...),
		"start_at":   bson.M{"bsonType": "date"},
		"end_at":     bson.M{"bsonType": "date"},
		"created_by": bson.M{"bsonType": "objectId"},
	})
}

func minutesSchema() bson.M {
	return object(bson.A{"title", "meeting_date", "uploaded_by"}, bson.M{
		"title":        nonBlank,
		"meeting_date": bson.M{"bsonType": "date"},
		"uploaded_by":  bson.M{"bsonType": "objectId"},
	})
}
