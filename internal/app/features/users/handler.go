// internal/app/features/users/handler.go
package users

import (
	rolestore "github.com/dalemusser/mediateam/internal/app/store/roles"
	userrolestore "github.com/dalemusser/mediateam/internal/app/store/userroles"
	userstore "github.com/dalemusser/mediateam/internal/app/store/users"
	"github.com/dalemusser/mediateam/internal/app/system/auditlog"
	"github.com/dalemusser/mediateam/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves portal user administration and the signed-in user's own
// role and permission views.
type Handler struct {
	Log       *zap.Logger
	Users     *userstore.Store
	Roles     *rolestore.Store
	UserRoles *userrolestore.Store
	Checker   *authz.Checker
	Activity  *auditlog.Logger
}

func NewHandler(db *mongo.Database, checker *authz.Checker, activity *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:       logger,
		Users:     userstore.New(db),
		Roles:     rolestore.New(db),
		UserRoles: userrolestore.New(db),
		Checker:   checker,
		Activity:  activity,
	}
}
