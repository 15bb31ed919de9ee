package repository

import (
	"context"

	"github.com/Vibush01/EasyFitTrack/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data
// (admins, gyms, trainers, members share the users collection).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	ListByGym(ctx context.Context, gymID primitive.ObjectID, role domain.Role) ([]domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Roster management. The gym document is authoritative; the member's
	// gymId/membership are the mirrored side of the relation.
	AddMemberToGym(ctx context.Context, gymID, memberID primitive.ObjectID) error
	RemoveMemberFromGym(ctx context.Context, gymID, memberID primitive.ObjectID) error
	AddTrainerToGym(ctx context.Context, gymID, trainerID primitive.ObjectID) error
	SetGymForUser(ctx context.Context, userID, gymID primitive.ObjectID) error
	SetMembership(ctx context.Context, memberID primitive.ObjectID, membership *domain.Membership) error
	ClearGymAndMembership(ctx context.Context, userID primitive.ObjectID) error
	// ClearGymRefs detaches every member and trainer of a gym in one pass
	// (used by the admin cascade when a gym is deleted).
	ClearGymRefs(ctx context.Context, gymID primitive.ObjectID) error
}

// MembershipRequestRepository manages join/renewal requests.
type MembershipRequestRepository interface {
	Create(ctx context.Context, req *domain.MembershipRequest) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MembershipRequest, error)
	FindPending(ctx context.Context, memberID, gymID primitive.ObjectID) (*domain.MembershipRequest, error)
	ListByGym(ctx context.Context, gymID primitive.ObjectID) ([]domain.MembershipRequest, error)
	ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.MembershipRequest, error)
	// ResolveIfPending performs the conditional pending -> approved|denied
	// transition. Returns ErrNotFound when no document matched, i.e. the
	// request is absent or already resolved; callers disambiguate.
	ResolveIfPending(ctx context.Context, id primitive.ObjectID, status domain.RequestStatus) (*domain.MembershipRequest, error)
	DeletePendingByGym(ctx context.Context, gymID primitive.ObjectID) error
}

// ScheduleRepository manages trainer availability slots and bookings.
type ScheduleRepository interface {
	Create(ctx context.Context, slot *domain.ScheduleSlot) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ScheduleSlot, error)
	ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ScheduleSlot, error)
	ListAvailableByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ScheduleSlot, error)
	ListBookedByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.ScheduleSlot, error)
	// BookIfAvailable is the single atomic compare-and-set of the booking
	// engine: "update where _id=X and status=available". Under concurrent
	// booking attempts exactly one caller wins; the rest get ErrNotFound.
	BookIfAvailable(ctx context.Context, id, memberID primitive.ObjectID) (*domain.ScheduleSlot, error)
	// DeleteIfAvailable removes a slot only while it is still available,
	// so a concurrent booking can never delete the booking record.
	DeleteIfAvailable(ctx context.Context, id primitive.ObjectID) error
}

// PlanRequestRepository manages workout/diet plan requests.
type PlanRequestRepository interface {
	Create(ctx context.Context, req *domain.PlanRequest) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanRequest, error)
	FindPending(ctx context.Context, memberID, trainerID primitive.ObjectID, planType domain.PlanType) (*domain.PlanRequest, error)
	ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.PlanRequest, error)
	ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.PlanRequest, error)
	ResolveIfPending(ctx context.Context, id primitive.ObjectID, status domain.RequestStatus) (*domain.PlanRequest, error)
}

// WorkoutPlanRepository manages trainer-authored workout plans.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	Update(ctx context.Context, plan *domain.WorkoutPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// DietPlanRepository manages trainer-authored diet plans.
type DietPlanRepository interface {
	Create(ctx context.Context, plan *domain.DietPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DietPlan, error)
	ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.DietPlan, error)
	ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.DietPlan, error)
	Update(ctx context.Context, plan *domain.DietPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AnnouncementRepository manages the durable announcement history.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *domain.Announcement) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Announcement, error)
	ListByGym(ctx context.Context, gymID primitive.ObjectID) ([]domain.Announcement, error)
	UpdateMessage(ctx context.Context, id primitive.ObjectID, message string) (*domain.Announcement, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByGym(ctx context.Context, gymID primitive.ObjectID) error
}

// MacroLogRepository manages member nutrition logs.
type MacroLogRepository interface {
	Create(ctx context.Context, entry *domain.MacroLog) (primitive.ObjectID, error)
	ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.MacroLog, error)
}

// EventLogRepository manages analytics events.
type EventLogRepository interface {
	Create(ctx context.Context, event *domain.EventLog) (primitive.ObjectID, error)
	List(ctx context.Context, limit int64) ([]domain.EventLog, error)
}
