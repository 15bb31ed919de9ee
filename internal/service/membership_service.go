package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Vibush01/EasyFitTrack/internal/domain"
	"github.com/Vibush01/EasyFitTrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Decision is the outcome an actor picks when resolving a request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionDeny    Decision = "deny"
)

// ValidDecision reports whether d is a recognized decision.
func ValidDecision(d Decision) bool {
	return d == DecisionApprove || d == DecisionDeny
}

// --- Service Interface ---

// MembershipService governs join requests and membership renewal. Both paths
// share the same state machine: pending -> approved | denied, terminal.
type MembershipService interface {
	CreateRequest(ctx context.Context, memberID, gymID primitive.ObjectID, duration domain.DurationLabel) (*domain.MembershipRequest, error)
	ResolveRequest(ctx context.Context, requestID primitive.ObjectID, decision Decision, actorID primitive.ObjectID) (*domain.MembershipRequest, error)
	ListGymRequests(ctx context.Context, gymID primitive.ObjectID) ([]domain.MembershipRequest, error)
	ListMemberRequests(ctx context.Context, memberID primitive.ObjectID) ([]domain.MembershipRequest, error)
}

// --- Service Implementation ---

type membershipService struct {
	userRepo    repository.UserRepository
	requestRepo repository.MembershipRequestRepository
	now         func() time.Time
}

// NewMembershipService creates a new instance of membershipService.
func NewMembershipService(userRepo repository.UserRepository, requestRepo repository.MembershipRequestRepository) MembershipService {
	return &membershipService{
		userRepo:    userRepo,
		requestRepo: requestRepo,
		now:         time.Now,
	}
}

// CreateRequest inserts a pending join or renewal request. At most one
// pending request may exist per (member, gym) pair; a second attempt while
// one is pending fails with a conflict rather than duplicating.
func (s *membershipService) CreateRequest(ctx context.Context, memberID, gymID primitive.ObjectID, duration domain.DurationLabel) (*domain.MembershipRequest, error) {
	if memberID == primitive.NilObjectID || gymID == primitive.NilObjectID {
		return nil, domain.NewValidationError("member ID and gym ID are required")
	}
	// Reject unrecognized duration labels up front; never silently default.
	if _, err := domain.ComputeExpiry(duration, s.now()); err != nil {
		return nil, err
	}

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

	if _, err := s.requestRepo.FindPending(ctx, memberID, gymID); err == nil {
		return nil, domain.NewConflictError("a pending membership request already exists for this gym")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	req := &domain.MembershipRequest{
		MemberID:          memberID,
		GymID:             gymID,
		RequestedDuration: duration,
		Status:            domain.RequestPending,
	}
	id, err := s.requestRepo.Create(ctx, req)
	if err != nil {
		// Two concurrent creates can both pass the FindPending check; the
		// partial unique index decides the race.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.NewConflictError("a pending membership request already exists for this gym")
		}
		return nil, err
	}
	req.ID = id
	return req, nil
}

// ResolveRequest transitions a pending request to approved or denied. The
// transition is terminal; re-resolving fails with an invalid-state error.
//
// On approval the member's membership is recomputed from the approval time:
// renewal replaces the window, it does not stack onto the previous endDate.
// Approving a shorter renewal before the old window lapses therefore shortens
// it; this mirrors the original product behavior and is intentional.
func (s *membershipService) ResolveRequest(ctx context.Context, requestID primitive.ObjectID, decision Decision, actorID primitive.ObjectID) (*domain.MembershipRequest, error) {
	if !ValidDecision(decision) {
		return nil, domain.NewValidationError(fmt.Sprintf("decision must be %q or %q", DecisionApprove, DecisionDeny))
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("membership request not found")
		}
		return nil, err
	}

	if err := s.authorizeResolver(ctx, req.GymID, actorID); err != nil {
		return nil, err
	}

	if decision == DecisionDeny {
		resolved, err := s.requestRepo.ResolveIfPending(ctx, requestID, domain.RequestDenied)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, domain.NewInvalidStateError("membership request is already resolved")
			}
			return nil, err
		}
		return resolved, nil
	}

	// Approval path. Validate the duration before committing the transition
	// so a bad label cannot leave the request approved with no membership.
	now := s.now().UTC()
	endDate, err := domain.ComputeExpiry(req.RequestedDuration, now)
	if err != nil {
		return nil, err
	}

	member, err := s.userRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("requesting member no longer exists")
		}
		return nil, err
	}

	// The conditional update on status=pending is the commit point: exactly
	// one resolver wins a concurrent race, the rest land here with not-found.
	resolved, err := s.requestRepo.ResolveIfPending(ctx, requestID, domain.RequestApproved)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewInvalidStateError("membership request is already resolved")
		}
		return nil, err
	}

	// Initial join: attach the member to the gym on both sides of the
	// relation. Renewal skips this; the member is already on the roster.
	if !member.BelongsToGym(req.GymID) {
		if err := s.userRepo.AddMemberToGym(ctx, req.GymID, req.MemberID); err != nil {
			return nil, err
		}
		if err := s.userRepo.SetGymForUser(ctx, req.MemberID, req.GymID); err != nil {
			return nil, err
		}
	}

	membership := &domain.Membership{
		Duration:  req.RequestedDuration,
		StartDate: now,
		EndDate:   endDate,
	}
	if err := s.userRepo.SetMembership(ctx, req.MemberID, membership); err != nil {
		return nil, err
	}

	return resolved, nil
}

// authorizeResolver allows the owning gym itself or any trainer of that gym.
func (s *membershipService) authorizeResolver(ctx context.Context, gymID, actorID primitive.ObjectID) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewAuthorizationError("acting user not found")
		}
		return err
	}

	switch {
	case actor.IsGym() && actor.ID == gymID:
		return nil
	case actor.IsTrainer() && actor.BelongsToGym(gymID):
		return nil
	}
	return domain.NewAuthorizationError("only the gym or its trainers may resolve this request")
}

// ListGymRequests returns all requests targeting a gym, newest first.
func (s *membershipService) ListGymRequests(ctx context.Context, gymID primitive.ObjectID) ([]domain.MembershipRequest, error) {
	return s.requestRepo.ListByGym(ctx, gymID)
}

// ListMemberRequests returns all requests a member has made, newest first.
func (s *membershipService) ListMemberRequests(ctx context.Context, memberID primitive.ObjectID) ([]domain.MembershipRequest, error) {
	return s.requestRepo.ListByMember(ctx, memberID)
}
