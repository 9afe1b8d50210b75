// internal/app/system/authz/checker.go
package authz

import (
	"context"
	"net/http"

	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	msgDenied        = "You do not have permission to perform this action"
	msgNoAssignments = "You do not have any role with permissions assigned"
)

// PermissionSource returns, for one user, the permission list of each
// active role assigned to them. An empty result means no assignments.
type PermissionSource interface {
	AssignedPermissions(ctx context.Context, userID primitive.ObjectID) ([][]models.Permission, error)
}

// Decision is the outcome of a permission check.
type Decision struct {
	Allowed       bool
	NoAssignments bool
	Granted       Set
}

// Checker authorizes principals against "at least one of" permission lists.
type Checker struct {
	Source PermissionSource
	Log    *zap.Logger

	// HidePermissions omits userPermissions from denial responses.
	HidePermissions bool
}

// NewChecker constructs a Checker.
func NewChecker(src PermissionSource, logger *zap.Logger) *Checker {
	return &Checker{Source: src, Log: logger}
}

// Resolve returns the union of permissions across the user's active role
// assignments and the number of assignments it was built from.
func (c *Checker) Resolve(ctx context.Context, userID primitive.ObjectID) (Set, int, error) {
	lists, err := c.Source.AssignedPermissions(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return Union(lists...), len(lists), nil
}

// Check decides whether userID holds at least one of required.
func (c *Checker) Check(ctx context.Context, userID primitive.ObjectID, required ...models.Permission) (Decision, error) {
	granted, n, err := c.Resolve(ctx, userID)
	if err != nil {
		return Decision{}, err
	}
	if n == 0 {
		return Decision{NoAssignments: true, Granted: granted}, nil
	}
	return Decision{Allowed: granted.HasAny(required), Granted: granted}, nil
}

// RequirePermission admits a user principal holding at least one of perms
// and attaches the resolved set to the request context. Admin principals
// are refused: they carry no role assignments.
func (c *Checker) RequirePermission(perms ...models.Permission) func(http.Handler) http.Handler {
	return c.require(false, perms)
}

// RequireAdminOr admits any admin principal outright and otherwise behaves
// like RequirePermission.
func (c *Checker) RequireAdminOr(perms ...models.Permission) func(http.Handler) http.Handler {
	return c.require(true, perms)
}

func (c *Checker) require(adminBypass bool, perms []models.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.CurrentPrincipal(r)
			if !ok {
				respond.Unauthorized(w, "Not authorized, no token")
				return
			}
			if p.IsAdmin() {
				if adminBypass {
					next.ServeHTTP(w, r)
					return
				}
				c.deny(w, msgDenied, perms, nil)
				return
			}

			d, err := c.Check(r.Context(), p.ID, perms...)
			if err != nil {
				respond.Internal(w, c.Log, "permission check failed", err)
				return
			}
			switch {
			case d.NoAssignments:
				c.deny(w, msgNoAssignments, perms, d.Granted)
			case !d.Allowed:
				c.Log.Debug("permission denied",
					zap.String("user_id", p.ID.Hex()),
					zap.Strings("required", models.PermissionStrings(perms)))
				c.deny(w, msgDenied, perms, d.Granted)
			default:
				next.ServeHTTP(w, r.WithContext(WithPermissions(r.Context(), d.Granted)))
			}
		})
	}
}

type denial struct {
	Success             bool     `json:"success"`
	Message             string   `json:"message"`
	RequiredPermissions []string `json:"requiredPermissions"`
	UserPermissions     any      `json:"userPermissions,omitempty"`
}

func (c *Checker) deny(w http.ResponseWriter, msg string, required []models.Permission, granted Set) {
	body := denial{
		Message:             msg,
		RequiredPermissions: models.PermissionStrings(required),
	}
	if !c.HidePermissions {
		body.UserPermissions = models.PermissionStrings(granted.Sorted())
	}
	respond.JSON(w, http.StatusForbidden, body)
}
