// internal/domain/models/submission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission status values.
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// MinistryAreas lists the team areas an applicant can volunteer for.
var MinistryAreas = []string{
	"photography",
	"videography",
	"sound",
	"projection",
	"livestream",
	"graphics",
	"social_media",
	"other",
}

// Submission is a membership application submitted through the public form.
type Submission struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName      string             `bson:"full_name" json:"fullName"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone" json:"phone"`
	DateOfBirth   *time.Time         `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	MinistryAreas []string           `bson:"ministry_areas" json:"ministryAreas"`
	Skills        string             `bson:"skills,omitempty" json:"skills,omitempty"`
	Experience    string             `bson:"experience,omitempty" json:"experience,omitempty"`
	Availability  []string           `bson:"availability,omitempty" json:"availability,omitempty"`
	Motivation    string             `bson:"motivation,omitempty" json:"motivation,omitempty"`

	Status      string              `bson:"status" json:"status"`
	ReviewNotes string              `bson:"review_notes,omitempty" json:"reviewNotes,omitempty"`
	ReviewedBy  *primitive.ObjectID `bson:"reviewed_by,omitempty" json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time          `bson:"reviewed_at,omitempty" json:"reviewedAt,omitempty"`
	UserID      *primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
