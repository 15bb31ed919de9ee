package service

import (
	"context"
	"errors"
	"time"

	"github.com/Vibush01/EasyFitTrack/internal/domain"
	"github.com/Vibush01/EasyFitTrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Service Interface ---

// ScheduleService governs trainer availability slots and session booking.
// Slots move available -> booked exactly once; there is no cancellation.
type ScheduleService interface {
	PostSlot(ctx context.Context, trainerID primitive.ObjectID, startTime, endTime time.Time) (*domain.ScheduleSlot, error)
	DeleteSlot(ctx context.Context, slotID, actorID primitive.ObjectID) error
	BookSlot(ctx context.Context, slotID, memberID primitive.ObjectID) (*domain.ScheduleSlot, error)
	ListTrainerSlots(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ScheduleSlot, error)
	ListAvailableSlots(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ScheduleSlot, error)
	ListMemberBookings(ctx context.Context, memberID primitive.ObjectID) ([]domain.ScheduleSlot, error)
}

// --- Service Implementation ---

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
}

// NewScheduleService creates a new instance of scheduleService.
func NewScheduleService(scheduleRepo repository.ScheduleRepository) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
	}
}

// PostSlot creates a new availability slot. Overlapping windows from the same
// trainer are permitted; booking is per-slot so overlap is harmless.
func (s *scheduleService) PostSlot(ctx context.Context, trainerID primitive.ObjectID, startTime, endTime time.Time) (*domain.ScheduleSlot, error) {
	if trainerID == primitive.NilObjectID {
		return nil, domain.NewValidationError("trainer ID is required")
	}
	if startTime.IsZero() || endTime.IsZero() {
		return nil, domain.NewValidationError("start and end time are required")
	}
	if !startTime.Before(endTime) {
		return nil, domain.NewValidationError("slot start time must be before end time")
	}

	slot := &domain.ScheduleSlot{
		TrainerID: trainerID,
		StartTime: startTime.UTC(),
		EndTime:   endTime.UTC(),
		Status:    domain.SlotAvailable,
	}
	id, err := s.scheduleRepo.Create(ctx, slot)
	if err != nil {
		return nil, err
	}
	slot.ID = id
	return slot, nil
}

// DeleteSlot removes an available slot owned by the actor. Booked slots are
// the booking record and cannot be deleted.
func (s *scheduleService) DeleteSlot(ctx context.Context, slotID, actorID primitive.ObjectID) error {
	slot, err := s.scheduleRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewNotFoundError("schedule slot not found")
		}
		return err
	}

	if slot.TrainerID != actorID {
		return domain.NewAuthorizationError("only the owning trainer may delete this slot")
	}
	if slot.Status != domain.SlotAvailable {
		return domain.NewInvalidStateError("a booked slot cannot be deleted")
	}

	// Conditional delete: if a member booked the slot between the read above
	// and this call, the filter no longer matches and the booking survives.
	err = s.scheduleRepo.DeleteIfAvailable(ctx, slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewInvalidStateError("a booked slot cannot be deleted")
		}
		return err
	}
	return nil
}

// BookSlot books an available slot for a member. The repository performs a
// single compare-and-set keyed on status, so of two concurrent attempts
// exactly one succeeds; the loser observes an invalid-state error.
func (s *scheduleService) BookSlot(ctx context.Context, slotID, memberID primitive.ObjectID) (*domain.ScheduleSlot, error) {
	if memberID == primitive.NilObjectID {
		return nil, domain.NewValidationError("member ID is required")
	}

	slot, err := s.scheduleRepo.BookIfAvailable(ctx, slotID, memberID)
	if err == nil {
		return slot, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// The CAS missed: either the slot never existed or it is already booked.
	if _, getErr := s.scheduleRepo.GetByID(ctx, slotID); getErr != nil {
		if errors.Is(getErr, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("schedule slot not found")
		}
		return nil, getErr
	}
	return nil, domain.NewInvalidStateError("slot is no longer available")
}

// ListTrainerSlots returns all of a trainer's slots, booked and available.
func (s *scheduleService) ListTrainerSlots(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ScheduleSlot, error) {
	return s.scheduleRepo.ListByTrainer(ctx, trainerID)
}

// ListAvailableSlots returns a trainer's open slots for the booking screen.
func (s *scheduleService) ListAvailableSlots(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ScheduleSlot, error) {
	return s.scheduleRepo.ListAvailableByTrainer(ctx, trainerID)
}

// ListMemberBookings returns the sessions a member has booked.
func (s *scheduleService) ListMemberBookings(ctx context.Context, memberID primitive.ObjectID) ([]domain.ScheduleSlot, error) {
	return s.scheduleRepo.ListBookedByMember(ctx, memberID)
}
