// internal/app/features/roles/handler.go
package roles

import (
	rolestore "github.com/dalemusser/mediateam/internal/app/store/roles"
	userrolestore "github.com/dalemusser/mediateam/internal/app/store/userroles"
	userstore "github.com/dalemusser/mediateam/internal/app/store/users"
	"github.com/dalemusser/mediateam/internal/app/system/auditlog"
	"github.com/dalemusser/mediateam/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves role management and role assignment.
type Handler struct {
	Log       *zap.Logger
	Roles     *rolestore.Store
	UserRoles *userrolestore.Store
	Users     *userstore.Store
	Notify    *notify.Dispatcher
	Activity  *auditlog.Logger
}

func NewHandler(db *mongo.Database, dispatcher *notify.Dispatcher, activity *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:       logger,
		Roles:     rolestore.New(db),
		UserRoles: userrolestore.New(db),
		Users:     userstore.New(db),
		Notify:    dispatcher,
		Activity:  activity,
	}
}
