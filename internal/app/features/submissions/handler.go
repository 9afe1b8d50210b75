// internal/app/features/submissions/handler.go
package submissions

import (
	submissionstore "github.com/dalemusser/mediateam/internal/app/store/submissions"
	userstore "github.com/dalemusser/mediateam/internal/app/store/users"
	"github.com/dalemusser/mediateam/internal/app/system/auditlog"
	"github.com/dalemusser/mediateam/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the membership application workflow: the public form and
// the admin review queue.
type Handler struct {
	Log         *zap.Logger
	Submissions *submissionstore.Store
	Users       *userstore.Store
	Notify      *notify.Dispatcher
	Activity    *auditlog.Logger
}

func NewHandler(db *mongo.Database, dispatcher *notify.Dispatcher, activity *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:         logger,
		Submissions: submissionstore.New(db),
		Users:       userstore.New(db),
		Notify:      dispatcher,
		Activity:    activity,
	}
}
