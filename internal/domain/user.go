package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleAdmin   Role = "admin"
	RoleGym     Role = "gym"
	RoleTrainer Role = "trainer"
	RoleMember  Role = "member"
)

// ValidRole reports whether r is one of the four recognized roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleGym, RoleTrainer, RoleMember:
		return true
	}
	return false
}

// User represents any actor in the system. Role-specific fields live on the
// same document; cross-references are stored as ObjectIDs only, never as
// embedded documents, so the Gym <-> Member relation cannot form a cyclic
// object graph.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Gym-specific ---
	// Profile fields shown on the discovery screen.
	Address     string `bson:"address,omitempty" json:"address,omitempty"`
	City        string `bson:"city,omitempty" json:"city,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	// Roster relations. The gym document is authoritative for membership.
	MemberIDs  []primitive.ObjectID `bson:"memberIds,omitempty" json:"memberIds,omitempty"`
	TrainerIDs []primitive.ObjectID `bson:"trainerIds,omitempty" json:"trainerIds,omitempty"`

	// --- Member/Trainer-specific ---
	// The gym this member or trainer currently belongs to. A member has at
	// most one active gym at a time.
	GymID *primitive.ObjectID `bson:"gymId,omitempty" json:"gymId,omitempty"`

	// --- Member-specific ---
	// Non-nil only while GymID is non-nil.
	Membership *Membership `bson:"membership,omitempty" json:"membership,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsGym() bool {
	return u.Role == RoleGym
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsMember() bool {
	return u.Role == RoleMember
}

// BelongsToGym reports whether this member or trainer is currently attached
// to the given gym.
func (u *User) BelongsToGym(gymID primitive.ObjectID) bool {
	return u.GymID != nil && *u.GymID == gymID
}
