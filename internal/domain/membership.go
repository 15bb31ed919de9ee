package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DurationLabel is the wire contract for membership durations. Exactly these
// five literals are accepted; anything else is a validation error.
type DurationLabel string

const (
	DurationOneWeek     DurationLabel = "1 week"
	DurationOneMonth    DurationLabel = "1 month"
	DurationThreeMonths DurationLabel = "3 months"
	DurationSixMonths   DurationLabel = "6 months"
	DurationOneYear     DurationLabel = "1 year"
)

// DurationLabels lists all recognized labels, in ascending order of length.
var DurationLabels = []DurationLabel{
	DurationOneWeek,
	DurationOneMonth,
	DurationThreeMonths,
	DurationSixMonths,
	DurationOneYear,
}

// ComputeExpiry resolves a duration label to an expiry timestamp relative to
// `from`. Month and year arithmetic is calendar-aware (time.AddDate), so
// overflow normalizes forward: Jan 31 + "1 month" lands on Mar 2 or Mar 3
// depending on leap years. The same function backs both request previews and
// the persisted endDate, so client and server always agree.
func ComputeExpiry(duration DurationLabel, from time.Time) (time.Time, error) {
	switch duration {
	case DurationOneWeek:
		return from.AddDate(0, 0, 7), nil
	case DurationOneMonth:
		return from.AddDate(0, 1, 0), nil
	case DurationThreeMonths:
		return from.AddDate(0, 3, 0), nil
	case DurationSixMonths:
		return from.AddDate(0, 6, 0), nil
	case DurationOneYear:
		return from.AddDate(1, 0, 0), nil
	}
	return time.Time{}, NewValidationError(fmt.Sprintf("unrecognized membership duration %q", duration))
}

// MembershipStatus is derived from endDate, never stored.
type MembershipStatus string

const (
	MembershipActive  MembershipStatus = "active"
	MembershipExpired MembershipStatus = "expired"
)

// Membership is a member's time-bounded relationship with their gym.
type Membership struct {
	Duration  DurationLabel `bson:"duration" json:"duration"`
	StartDate time.Time     `bson:"startDate" json:"startDate"`
	EndDate   time.Time     `bson:"endDate" json:"endDate"`
}

// StatusAt derives the membership status: active iff endDate is after now.
func (m *Membership) StatusAt(now time.Time) MembershipStatus {
	if m.EndDate.After(now) {
		return MembershipActive
	}
	return MembershipExpired
}

// RequestStatus is the lifecycle of a membership or plan request.
// pending -> approved | denied, both terminal.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDenied   RequestStatus = "denied"
)

// MembershipRequest represents either an initial join request or a renewal
// request from a member against a gym. At most one pending request may exist
// per (member, gym) pair.
type MembershipRequest struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID          primitive.ObjectID `bson:"memberId" json:"memberId"`
	GymID             primitive.ObjectID `bson:"gymId" json:"gymId"`
	RequestedDuration DurationLabel      `bson:"requestedDuration" json:"requestedDuration"`
	Status            RequestStatus      `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	ResolvedAt        *time.Time         `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}
