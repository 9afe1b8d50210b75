// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventTypes lists the calendar event categories.
var EventTypes = []string{"service", "rehearsal", "meeting", "training", "other"}

// Event is a calendar entry for the media team.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"` // sanitized HTML
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	EventType   string             `bson:"event_type" json:"eventType"`
	StartAt     time.Time          `bson:"start_at" json:"startAt"`
	EndAt       *time.Time         `bson:"end_at,omitempty" json:"endAt,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"createdBy"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
