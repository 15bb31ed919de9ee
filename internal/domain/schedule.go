package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SlotStatus is the lifecycle of an availability slot.
// available -> booked, terminal. There is no cancelled state; session
// completion retires slots outside this engine.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
)

// ScheduleSlot is a trainer-defined time window offered for booking. A booked
// slot is itself the booking record: BookedBy is set iff Status is booked.
type ScheduleSlot struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TrainerID primitive.ObjectID  `bson:"trainerId" json:"trainerId"`
	StartTime time.Time           `bson:"startTime" json:"startTime"`
	EndTime   time.Time           `bson:"endTime" json:"endTime"`
	Status    SlotStatus          `bson:"status" json:"status"`
	BookedBy  *primitive.ObjectID `bson:"bookedBy,omitempty" json:"bookedBy,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}
