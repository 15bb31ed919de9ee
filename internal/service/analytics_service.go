package service

import (
	"context"
	"fmt"

	"github.com/Vibush01/EasyFitTrack/internal/domain"
	"github.com/Vibush01/EasyFitTrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultEventListLimit = 200

// --- Service Interface ---

// AnalyticsService records usage events (page views and custom events) and
// serves them to the admin dashboard.
type AnalyticsService interface {
	LogEvent(ctx context.Context, userID primitive.ObjectID, role domain.Role, event, page, details string) (*domain.EventLog, error)
	ListEvents(ctx context.Context, actorRole domain.Role) ([]domain.EventLog, error)
}

// --- Service Implementation ---

type analyticsService struct {
	eventRepo repository.EventLogRepository
}

// NewAnalyticsService creates a new instance of analyticsService.
func NewAnalyticsService(eventRepo repository.EventLogRepository) AnalyticsService {
	return &analyticsService{eventRepo: eventRepo}
}

// LogEvent appends an analytics event. Empty fields default the way the
// tracker expects: event "Page View", page "N/A", synthesized details.
func (s *analyticsService) LogEvent(ctx context.Context, userID primitive.ObjectID, role domain.Role, event, page, details string) (*domain.EventLog, error) {
	if userID == primitive.NilObjectID {
		return nil, domain.NewValidationError("user ID is required")
	}

	if event == "" {
		event = "Page View"
	}
	if page == "" {
		page = "N/A"
	}
	if details == "" {
		details = fmt.Sprintf("%s visited %s", role, page)
	}

	entry := &domain.EventLog{
		UserID:   userID,
		UserRole: role,
		Event:    event,
		Page:     page,
		Details:  details,
	}
	id, err := s.eventRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

// ListEvents returns the most recent events; admins only.
func (s *analyticsService) ListEvents(ctx context.Context, actorRole domain.Role) ([]domain.EventLog, error) {
	if actorRole != domain.RoleAdmin {
		return nil, domain.NewAuthorizationError("only admins may view the event log")
	}
	return s.eventRepo.List(ctx, defaultEventListLimit)
}
