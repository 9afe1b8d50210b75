package users

import (
	"time"

	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createRequest struct {
	FullName string `json:"fullName" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,loginemail"`
	Phone    string `json:"phone" validate:"max=32"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,userstatus"`
	Reason string `json:"reason" validate:"max=500"`
}

// heldRole is a role together with when and by whom it was assigned.
type heldRole struct {
	models.Role
	AssignedAt time.Time          `json:"assignedAt"`
	AssignedBy primitive.ObjectID `json:"assignedBy"`
}

type userDetail struct {
	*models.User
	Roles []heldRole `json:"roles"`
}

type permissionsView struct {
	IsAdmin     bool     `json:"isAdmin"`
	Roles       int      `json:"roleCount"`
	Permissions []string `json:"permissions"`
}
