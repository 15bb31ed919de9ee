package service

import (
	"context"
	"errors"

	"github.com/Vibush01/EasyFitTrack/internal/domain"
	"github.com/Vibush01/EasyFitTrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Broadcast event names pushed to connected member sessions.
const (
	EventAnnouncementNew     = "announcement:new"
	EventAnnouncementUpdated = "announcement:updated"
	EventAnnouncementDeleted = "announcement:deleted"
)

// Publisher fans an event out to every session subscribed to a gym's channel.
// Delivery is at-most-once and best-effort: a slow or disconnected subscriber
// is skipped, never retried, and failures are not surfaced to the poster.
// Disconnected clients converge on their next full fetch.
type Publisher interface {
	Publish(gymID string, event string, payload any)
}

// NopPublisher discards all events. Useful in tests and tooling.
type NopPublisher struct{}

func (NopPublisher) Publish(gymID string, event string, payload any) {}

// --- Service Interface ---

// AnnouncementService is the append/broadcast log for gym announcements:
// durable history in the store, live fan-out through the Publisher.
type AnnouncementService interface {
	Post(ctx context.Context, gymID primitive.ObjectID, message string) (*domain.Announcement, error)
	Update(ctx context.Context, announcementID, actorID primitive.ObjectID, newMessage string) (*domain.Announcement, error)
	Delete(ctx context.Context, announcementID, actorID primitive.ObjectID) error
	List(ctx context.Context, gymID primitive.ObjectID) ([]domain.Announcement, error)
}

// --- Service Implementation ---

type announcementService struct {
	announcementRepo repository.AnnouncementRepository
	publisher        Publisher
}

// NewAnnouncementService creates a new instance of announcementService.
func NewAnnouncementService(announcementRepo repository.AnnouncementRepository, publisher Publisher) AnnouncementService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &announcementService{
		announcementRepo: announcementRepo,
		publisher:        publisher,
	}
}

// Post appends an announcement and pushes it to the gym's connected members.
func (s *announcementService) Post(ctx context.Context, gymID primitive.ObjectID, message string) (*domain.Announcement, error) {
	if message == "" {
		return nil, domain.NewValidationError("announcement message cannot be empty")
	}

	a := &domain.Announcement{
		GymID:   gymID,
		Message: message,
	}
	id, err := s.announcementRepo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id

	s.publisher.Publish(gymID.Hex(), EventAnnouncementNew, a)
	return a, nil
}

// Update replaces the message text; only the authoring gym may edit. A push
// event lets connected clients converge without re-fetching.
func (s *announcementService) Update(ctx context.Context, announcementID, actorID primitive.ObjectID, newMessage string) (*domain.Announcement, error) {
	if newMessage == "" {
		return nil, domain.NewValidationError("announcement message cannot be empty")
	}

	existing, err := s.announcementRepo.GetByID(ctx, announcementID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("announcement not found")
		}
		return nil, err
	}
	if existing.GymID != actorID {
		return nil, domain.NewAuthorizationError("only the authoring gym may edit this announcement")
	}

	updated, err := s.announcementRepo.UpdateMessage(ctx, announcementID, newMessage)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("announcement not found")
		}
		return nil, err
	}

	s.publisher.Publish(updated.GymID.Hex(), EventAnnouncementUpdated, updated)
	return updated, nil
}

// Delete removes an announcement; only the authoring gym may delete.
func (s *announcementService) Delete(ctx context.Context, announcementID, actorID primitive.ObjectID) error {
	existing, err := s.announcementRepo.GetByID(ctx, announcementID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewNotFoundError("announcement not found")
		}
		return err
	}
	if existing.GymID != actorID {
		return domain.NewAuthorizationError("only the authoring gym may delete this announcement")
	}

	if err := s.announcementRepo.Delete(ctx, announcementID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewNotFoundError("announcement not found")
		}
		return err
	}

	s.publisher.Publish(existing.GymID.Hex(), EventAnnouncementDeleted, map[string]string{
		"id": announcementID.Hex(),
	})
	return nil
}

// List returns a gym's durable announcement history, newest first.
func (s *announcementService) List(ctx context.Context, gymID primitive.ObjectID) ([]domain.Announcement, error) {
	return s.announcementRepo.ListByGym(ctx, gymID)
}
