package roles

import (
	"time"

	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createRequest struct {
	Name             string              `json:"name" validate:"required,min=2,max=80"`
	Description      string              `json:"description" validate:"max=500"`
	Responsibilities []string            `json:"responsibilities" validate:"max=50,dive,min=1,max=200"`
	Permissions      []models.Permission `json:"permissions" validate:"dive,permission"`
	IsActive         *bool               `json:"isActive"`
}

// updateRequest fields left out of the body are not changed.
type updateRequest struct {
	Name             *string             `json:"name" validate:"omitempty,min=2,max=80"`
	Description      *string             `json:"description" validate:"omitempty,max=500"`
	Responsibilities []string            `json:"responsibilities" validate:"omitempty,max=50,dive,min=1,max=200"`
	Permissions      []models.Permission `json:"permissions" validate:"omitempty,dive,permission"`
	IsActive         *bool               `json:"isActive"`
}

type assignRequest struct {
	UserID string `json:"userId" validate:"required,mongodb"`
	Notes  string `json:"notes" validate:"max=500"`
}

type member struct {
	ID         primitive.ObjectID `json:"id"`
	FullName   string             `json:"fullName"`
	Email      string             `json:"email"`
	Status     string             `json:"status"`
	AssignedAt time.Time          `json:"assignedAt"`
	AssignedBy primitive.ObjectID `json:"assignedBy"`
	Notes      string             `json:"notes,omitempty"`
}
