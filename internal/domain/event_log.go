package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventLog is a usage-analytics record (page views and custom events).
// Append-only; surfaced on the admin dashboard.
type EventLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	UserRole  Role               `bson:"userRole" json:"userRole"`
	Event     string             `bson:"event" json:"event"`
	Page      string             `bson:"page" json:"page"`
	Details   string             `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
