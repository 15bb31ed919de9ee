package service

import (
	"context"

	"github.com/Vibush01/EasyFitTrack/internal/domain"
	"github.com/Vibush01/EasyFitTrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MacroInput carries one day's self-reported nutrition numbers.
type MacroInput struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
}

// --- Service Interface ---

type MacroService interface {
	LogMacros(ctx context.Context, memberID primitive.ObjectID, input MacroInput) (*domain.MacroLog, error)
	ListMacros(ctx context.Context, memberID primitive.ObjectID) ([]domain.MacroLog, error)
}

// --- Service Implementation ---

type macroService struct {
	macroRepo repository.MacroLogRepository
}

// NewMacroService creates a new instance of macroService.
func NewMacroService(macroRepo repository.MacroLogRepository) MacroService {
	return &macroService{macroRepo: macroRepo}
}

// LogMacros appends a nutrition entry for the member.
func (s *macroService) LogMacros(ctx context.Context, memberID primitive.ObjectID, input MacroInput) (*domain.MacroLog, error) {
	if memberID == primitive.NilObjectID {
		return nil, domain.NewValidationError("member ID is required")
	}
	if input.Calories < 0 || input.Protein < 0 || input.Carbs < 0 || input.Fats < 0 {
		return nil, domain.NewValidationError("macro values cannot be negative")
	}

	entry := &domain.MacroLog{
		MemberID: memberID,
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fats:     input.Fats,
	}
	id, err := s.macroRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

// ListMacros returns the member's nutrition history, newest first.
func (s *macroService) ListMacros(ctx context.Context, memberID primitive.ObjectID) ([]domain.MacroLog, error) {
	return s.macroRepo.ListByMember(ctx, memberID)
}
