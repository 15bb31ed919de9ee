package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MacroLog is a member's self-reported nutrition entry.
type MacroLog struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID primitive.ObjectID `bson:"memberId" json:"memberId"`
	Calories float64            `bson:"calories" json:"calories"`
	Protein  float64            `bson:"protein" json:"protein"`
	Carbs    float64            `bson:"carbs" json:"carbs"`
	Fats     float64            `bson:"fats" json:"fats"`
	LoggedAt time.Time          `bson:"loggedAt" json:"loggedAt"`
}
