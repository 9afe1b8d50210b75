// internal/domain/models/minutes.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Minutes are the recorded notes of a team meeting.
type Minutes struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	MeetingDate time.Time          `bson:"meeting_date" json:"meetingDate"`
	Content     string             `bson:"content" json:"content"` // sanitized HTML
	Attendees   []string           `bson:"attendees,omitempty" json:"attendees,omitempty"`
	ActionItems []string           `bson:"action_items,omitempty" json:"actionItems,omitempty"`
	UploadedBy  primitive.ObjectID `bson:"uploaded_by" json:"uploadedBy"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
