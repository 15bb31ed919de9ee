package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement is a gym-scoped broadcast message. The durable record backs
// full fetches; live delivery to connected members goes through the realtime
// hub and is best-effort.
type Announcement struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GymID     primitive.ObjectID `bson:"gymId" json:"gymId"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
