package submissions

import "time"

// createRequest is the public application form.
type createRequest struct {
	FullName      string     `json:"fullName" validate:"required,min=2,max=120"`
	Email         string     `json:"email" validate:"required,loginemail"`
	Phone         string     `json:"phone" validate:"required,min=7,max=32"`
	Password      string     `json:"password" validate:"required,min=8,max=128"`
	DateOfBirth   *time.Time `json:"dateOfBirth"`
	Address       string     `json:"address" validate:"max=300"`
	MinistryAreas []string   `json:"ministryAreas" validate:"required,min=1,dive,ministryarea"`
	Skills        string     `json:"skills" validate:"max=2000"`
	Experience    string     `json:"experience" validate:"max=2000"`
	Availability  []string   `json:"availability" validate:"dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Motivation    string     `json:"motivation" validate:"max=2000"`
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

type approveRequest struct {
	Notes string `json:"notes" validate:"max=1000"`
}
