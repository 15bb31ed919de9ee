package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanType distinguishes workout plan requests from diet plan requests.
type PlanType string

const (
	PlanWorkout PlanType = "workout"
	PlanDiet    PlanType = "diet"
)

// ValidPlanType reports whether t is a recognized plan type.
func ValidPlanType(t PlanType) bool {
	return t == PlanWorkout || t == PlanDiet
}

// PlanRequest is a member's ask for a workout or diet plan from a trainer.
// Approval only authorizes the trainer to author a plan; it does not create
// one. Plans and plan requests are deliberately independent entities with no
// referential link between them.
type PlanRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID    primitive.ObjectID `bson:"memberId" json:"memberId"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	RequestType PlanType           `bson:"requestType" json:"requestType"`
	Status      RequestStatus      `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	ResolvedAt  *time.Time         `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}

// ExerciseItem is one entry of a workout plan.
type ExerciseItem struct {
	Name string `bson:"name" json:"name"`
	Sets int    `bson:"sets" json:"sets"`
	Reps string `bson:"reps" json:"reps"` // e.g. "8-12"
	Rest string `bson:"rest" json:"rest"` // e.g. "90s"
}

// WorkoutPlan is a workout prescription authored by a trainer for a member.
// Plans carry no status: once created they are current until edited in place
// or deleted permanently.
type WorkoutPlan struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TrainerID   primitive.ObjectID  `bson:"trainerId" json:"trainerId"`
	MemberID    primitive.ObjectID  `bson:"memberId" json:"memberId"`
	GymID       *primitive.ObjectID `bson:"gymId,omitempty" json:"gymId,omitempty"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Exercises   []ExerciseItem      `bson:"exercises" json:"exercises"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// MealItem is one entry of a diet plan.
type MealItem struct {
	Name     string  `bson:"name" json:"name"`
	Calories float64 `bson:"calories" json:"calories"`
	Protein  float64 `bson:"protein" json:"protein"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
	Fats     float64 `bson:"fats" json:"fats"`
	Time     string  `bson:"time,omitempty" json:"time,omitempty"` // e.g. "breakfast"
}

// DietPlan is a diet prescription authored by a trainer for a member.
type DietPlan struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TrainerID   primitive.ObjectID  `bson:"trainerId" json:"trainerId"`
	MemberID    primitive.ObjectID  `bson:"memberId" json:"memberId"`
	GymID       *primitive.ObjectID `bson:"gymId,omitempty" json:"gymId,omitempty"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Meals       []MealItem          `bson:"meals" json:"meals"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}
