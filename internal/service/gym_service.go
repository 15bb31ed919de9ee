package service

import (
	"context"
	"errors"

	"github.com/Vibush01/EasyFitTrack/internal/domain"
	"github.com/Vibush01/EasyFitTrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Service Interface ---

// GymService covers gym discovery, roster views, trainer association, and the
// admin deletion cascade.
type GymService interface {
	ListGyms(ctx context.Context) ([]domain.User, error)
	GetGym(ctx context.Context, gymID primitive.ObjectID) (*domain.User, error)
	ListGymMembers(ctx context.Context, gymID primitive.ObjectID) ([]domain.User, error)
	ListGymTrainers(ctx context.Context, gymID primitive.ObjectID) ([]domain.User, error)
	JoinAsTrainer(ctx context.Context, gymID, trainerID primitive.ObjectID) error
	RemoveMember(ctx context.Context, gymID, memberID, actorID primitive.ObjectID) error
	DeleteGym(ctx context.Context, gymID, actorID primitive.ObjectID) error
}

// --- Service Implementation ---

type gymService struct {
	userRepo         repository.UserRepository
	requestRepo      repository.MembershipRequestRepository
	announcementRepo repository.AnnouncementRepository
}

// NewGymService creates a new instance of gymService.
func NewGymService(
	userRepo repository.UserRepository,
	requestRepo repository.MembershipRequestRepository,
	announcementRepo repository.AnnouncementRepository,
) GymService {
	return &gymService{
		userRepo:         userRepo,
		requestRepo:      requestRepo,
		announcementRepo: announcementRepo,
	}
}

// ListGyms returns the gym directory for the discovery screen.
func (s *gymService) ListGyms(ctx context.Context) ([]domain.User, error) {
	gyms, err := s.userRepo.ListByRole(ctx, domain.RoleGym)
	if err != nil {
		return nil, err
	}
	for i := range gyms {
		gyms[i].PasswordHash = ""
	}
	return gyms, nil
}

// GetGym returns a single gym's profile and roster references.
func (s *gymService) GetGym(ctx context.Context, gymID primitive.ObjectID) (*domain.User, error) {
	gym, err := s.userRepo.GetByID(ctx, gymID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("gym not found")
		}
		return nil, err
	}
	if !gym.IsGym() {
		return nil, domain.NewNotFoundError("gym not found")
	}
	gym.PasswordHash = ""
	return gym, nil
}

// ListGymMembers returns the member roster of a gym.
func (s *gymService) ListGymMembers(ctx context.Context, gymID primitive.ObjectID) ([]domain.User, error) {
	members, err := s.userRepo.ListByGym(ctx, gymID, domain.RoleMember)
	if err != nil {
		return nil, err
	}
	for i := range members {
		members[i].PasswordHash = ""
	}
	return members, nil
}

// ListGymTrainers returns the trainer roster of a gym.
func (s *gymService) ListGymTrainers(ctx context.Context, gymID primitive.ObjectID) ([]domain.User, error) {
	trainers, err := s.userRepo.ListByGym(ctx, gymID, domain.RoleTrainer)
	if err != nil {
		return nil, err
	}
	for i := range trainers {
		trainers[i].PasswordHash = ""
	}
	return trainers, nil
}

// JoinAsTrainer attaches a trainer to a gym, both sides of the relation.
func (s *gymService) JoinAsTrainer(ctx context.Context, gymID, trainerID primitive.ObjectID) error {
	gym, err := s.GetGym(ctx, gymID)
	if err != nil {
		return err
	}

	trainer, err := s.userRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewNotFoundError("trainer not found")
		}
		return err
	}
	if !trainer.IsTrainer() {
		return domain.NewAuthorizationError("only trainers may join a gym as staff")
	}
	if trainer.GymID != nil && *trainer.GymID != gym.ID {
		return domain.NewConflictError("trainer already belongs to another gym")
	}

	if err := s.userRepo.AddTrainerToGym(ctx, gym.ID, trainerID); err != nil {
		return err
	}
	return s.userRepo.SetGymForUser(ctx, trainerID, gym.ID)
}

// RemoveMember drops a member from a gym's roster. The gym is authoritative
// for the roster; the member's own gym/membership refs are cleared to match.
func (s *gymService) RemoveMember(ctx context.Context, gymID, memberID, actorID primitive.ObjectID) error {
	if actorID != gymID {
		return domain.NewAuthorizationError("only the gym may remove its members")
	}

	member, err := s.userRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewNotFoundError("member not found")
		}
		return err
	}
	if !member.BelongsToGym(gymID) {
		return domain.NewInvalidStateError("member does not belong to this gym")
	}

	if err := s.userRepo.RemoveMemberFromGym(ctx, gymID, memberID); err != nil {
		return err
	}
	return s.userRepo.ClearGymAndMembership(ctx, memberID)
}

// DeleteGym removes a gym and cascades: every member and trainer is orphaned
// (gym and membership refs cleared), and the gym's announcements and
// unresolved membership requests are removed. Schedules stay with their
// trainers; resolved request history and authored plans are kept.
func (s *gymService) DeleteGym(ctx context.Context, gymID, actorID primitive.ObjectID) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewAuthorizationError("acting user not found")
		}
		return err
	}
	if !actor.IsAdmin() {
		return domain.NewAuthorizationError("only an admin may delete a gym")
	}

	if _, err := s.GetGym(ctx, gymID); err != nil {
		return err
	}

	if err := s.userRepo.ClearGymRefs(ctx, gymID); err != nil {
		return err
	}
	if err := s.requestRepo.DeletePendingByGym(ctx, gymID); err != nil {
		return err
	}
	if err := s.announcementRepo.DeleteByGym(ctx, gymID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, gymID)
}
