// internal/app/features/reports/handler.go
package reports

import (
	submissionstore "github.com/dalemusser/mediateam/internal/app/store/submissions"
	userstore "github.com/dalemusser/mediateam/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler streams CSV exports of applications and accounts.
type Handler struct {
	Log         *zap.Logger
	Submissions *submissionstore.Store
	Users       *userstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:         logger,
		Submissions: submissionstore.New(db),
		Users:       userstore.New(db),
	}
}
