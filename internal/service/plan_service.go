package service

import (
	"context"
	"errors"

	"github.com/Vibush01/EasyFitTrack/internal/domain"
	"github.com/Vibush01/EasyFitTrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Service Interface ---

// PlanService governs workout/diet plan requests and the plans themselves.
// Request approval and plan creation are deliberately decoupled: approval
// only signals the trainer's intent, it never materializes a plan, and
// CreateWorkoutPlan/CreateDietPlan do not check for an approved request.
type PlanService interface {
	RequestPlan(ctx context.Context, memberID, trainerID primitive.ObjectID, planType domain.PlanType) (*domain.PlanRequest, error)
	ResolveRequest(ctx context.Context, requestID primitive.ObjectID, decision Decision, trainerID primitive.ObjectID) (*domain.PlanRequest, error)
	ListTrainerRequests(ctx context.Context, trainerID primitive.ObjectID) ([]domain.PlanRequest, error)
	ListMemberRequests(ctx context.Context, memberID primitive.ObjectID) ([]domain.PlanRequest, error)

	CreateWorkoutPlan(ctx context.Context, trainerID, memberID primitive.ObjectID, title, description string, exercises []domain.ExerciseItem) (*domain.WorkoutPlan, error)
	UpdateWorkoutPlan(ctx context.Context, trainerID, planID primitive.ObjectID, title, description string, exercises []domain.ExerciseItem) (*domain.WorkoutPlan, error)
	DeleteWorkoutPlan(ctx context.Context, trainerID, planID primitive.ObjectID) error
	GetWorkoutPlan(ctx context.Context, planID, actorID primitive.ObjectID) (*domain.WorkoutPlan, error)
	ListWorkoutPlansForMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	ListWorkoutPlansByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.WorkoutPlan, error)

	CreateDietPlan(ctx context.Context, trainerID, memberID primitive.ObjectID, title, description string, meals []domain.MealItem) (*domain.DietPlan, error)
	UpdateDietPlan(ctx context.Context, trainerID, planID primitive.ObjectID, title, description string, meals []domain.MealItem) (*domain.DietPlan, error)
	DeleteDietPlan(ctx context.Context, trainerID, planID primitive.ObjectID) error
	GetDietPlan(ctx context.Context, planID, actorID primitive.ObjectID) (*domain.DietPlan, error)
	ListDietPlansForMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.DietPlan, error)
	ListDietPlansByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.DietPlan, error)
}

// --- Service Implementation ---

type planService struct {
	userRepo        repository.UserRepository
	planRequestRepo repository.PlanRequestRepository
	workoutRepo     repository.WorkoutPlanRepository
	dietRepo        repository.DietPlanRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	userRepo repository.UserRepository,
	planRequestRepo repository.PlanRequestRepository,
	workoutRepo repository.WorkoutPlanRepository,
	dietRepo repository.DietPlanRepository,
) PlanService {
	return &planService{
		userRepo:        userRepo,
		planRequestRepo: planRequestRepo,
		workoutRepo:     workoutRepo,
		dietRepo:        dietRepo,
	}
}

// === Plan requests ===

// RequestPlan creates a pending plan request. Pending requests of different
// types may coexist for the same pair; an identical pending triple conflicts.
func (s *planService) RequestPlan(ctx context.Context, memberID, trainerID primitive.ObjectID, planType domain.PlanType) (*domain.PlanRequest, error) {
	if memberID == primitive.NilObjectID || trainerID == primitive.NilObjectID {
		return nil, domain.NewValidationError("member ID and trainer ID are required")
	}
	if !domain.ValidPlanType(planType) {
		return nil, domain.NewValidationError("request type must be workout or diet")
	}

	trainer, err := s.userRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("trainer not found")
		}
		return nil, err
	}
	if !trainer.IsTrainer() {
		return nil, domain.NewNotFoundError("trainer not found")
	}

	if _, err := s.planRequestRepo.FindPending(ctx, memberID, trainerID, planType); err == nil {
		return nil, domain.NewConflictError("an identical plan request is already pending")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	req := &domain.PlanRequest{
		MemberID:    memberID,
		TrainerID:   trainerID,
		RequestType: planType,
		Status:      domain.RequestPending,
	}
	id, err := s.planRequestRepo.Create(ctx, req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.NewConflictError("an identical plan request is already pending")
		}
		return nil, err
	}
	req.ID = id
	return req, nil
}

// ResolveRequest transitions a pending plan request to approved or denied.
// Terminal either way; no plan is created here.
func (s *planService) ResolveRequest(ctx context.Context, requestID primitive.ObjectID, decision Decision, trainerID primitive.ObjectID) (*domain.PlanRequest, error) {
	if !ValidDecision(decision) {
		return nil, domain.NewValidationError("decision must be approve or deny")
	}

	req, err := s.planRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("plan request not found")
		}
		return nil, err
	}
	if req.TrainerID != trainerID {
		return nil, domain.NewAuthorizationError("only the addressed trainer may resolve this request")
	}

	status := domain.RequestDenied
	if decision == DecisionApprove {
		status = domain.RequestApproved
	}
	resolved, err := s.planRequestRepo.ResolveIfPending(ctx, requestID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewInvalidStateError("plan request is already resolved")
		}
		return nil, err
	}
	return resolved, nil
}

// ListTrainerRequests returns plan requests addressed to a trainer.
func (s *planService) ListTrainerRequests(ctx context.Context, trainerID primitive.ObjectID) ([]domain.PlanRequest, error) {
	return s.planRequestRepo.ListByTrainer(ctx, trainerID)
}

// ListMemberRequests returns plan requests a member has made.
func (s *planService) ListMemberRequests(ctx context.Context, memberID primitive.ObjectID) ([]domain.PlanRequest, error) {
	return s.planRequestRepo.ListByMember(ctx, memberID)
}

// === Workout plans ===

// CreateWorkoutPlan authors a plan for a member, independent of any request.
func (s *planService) CreateWorkoutPlan(ctx context.Context, trainerID, memberID primitive.ObjectID, title, description string, exercises []domain.ExerciseItem) (*domain.WorkoutPlan, error) {
	if title == "" {
		return nil, domain.NewValidationError("plan title is required")
	}
	member, err := s.lookupMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	plan := &domain.WorkoutPlan{
		TrainerID:   trainerID,
		MemberID:    memberID,
		GymID:       member.GymID,
		Title:       title,
		Description: description,
		Exercises:   exercises,
	}
	id, err := s.workoutRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

// UpdateWorkoutPlan replaces a plan's fields in place, authoring trainer only.
func (s *planService) UpdateWorkoutPlan(ctx context.Context, trainerID, planID primitive.ObjectID, title, description string, exercises []domain.ExerciseItem) (*domain.WorkoutPlan, error) {
	if title == "" {
		return nil, domain.NewValidationError("plan title is required")
	}
	plan, err := s.workoutRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("workout plan not found")
		}
		return nil, err
	}
	if plan.TrainerID != trainerID {
		return nil, domain.NewAuthorizationError("only the authoring trainer may modify this plan")
	}

	plan.Title = title
	plan.Description = description
	plan.Exercises = exercises
	if err := s.workoutRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return s.workoutRepo.GetByID(ctx, planID)
}

// DeleteWorkoutPlan removes a plan permanently, authoring trainer only.
func (s *planService) DeleteWorkoutPlan(ctx context.Context, trainerID, planID primitive.ObjectID) error {
	plan, err := s.workoutRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewNotFoundError("workout plan not found")
		}
		return err
	}
	if plan.TrainerID != trainerID {
		return domain.NewAuthorizationError("only the authoring trainer may delete this plan")
	}
	return s.workoutRepo.Delete(ctx, planID)
}

// GetWorkoutPlan returns a plan to its author or its target member.
func (s *planService) GetWorkoutPlan(ctx context.Context, planID, actorID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.workoutRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("workout plan not found")
		}
		return nil, err
	}
	if plan.TrainerID != actorID && plan.MemberID != actorID {
		return nil, domain.NewAuthorizationError("this plan is not visible to you")
	}
	return plan, nil
}

func (s *planService) ListWorkoutPlansForMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	return s.workoutRepo.ListByMember(ctx, memberID)
}

func (s *planService) ListWorkoutPlansByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	return s.workoutRepo.ListByTrainer(ctx, trainerID)
}

// === Diet plans ===

func (s *planService) CreateDietPlan(ctx context.Context, trainerID, memberID primitive.ObjectID, title, description string, meals []domain.MealItem) (*domain.DietPlan, error) {
	if title == "" {
		return nil, domain.NewValidationError("plan title is required")
	}
	member, err := s.lookupMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	plan := &domain.DietPlan{
		TrainerID:   trainerID,
		MemberID:    memberID,
		GymID:       member.GymID,
		Title:       title,
		Description: description,
		Meals:       meals,
	}
	id, err := s.dietRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

func (s *planService) UpdateDietPlan(ctx context.Context, trainerID, planID primitive.ObjectID, title, description string, meals []domain.MealItem) (*domain.DietPlan, error) {
	if title == "" {
		return nil, domain.NewValidationError("plan title is required")
	}
	plan, err := s.dietRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("diet plan not found")
		}
		return nil, err
	}
	if plan.TrainerID != trainerID {
		return nil, domain.NewAuthorizationError("only the authoring trainer may modify this plan")
	}

	plan.Title = title
	plan.Description = description
	plan.Meals = meals
	if err := s.dietRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return s.dietRepo.GetByID(ctx, planID)
}

func (s *planService) DeleteDietPlan(ctx context.Context, trainerID, planID primitive.ObjectID) error {
	plan, err := s.dietRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewNotFoundError("diet plan not found")
		}
		return err
	}
	if plan.TrainerID != trainerID {
		return domain.NewAuthorizationError("only the authoring trainer may delete this plan")
	}
	return s.dietRepo.Delete(ctx, planID)
}

func (s *planService) GetDietPlan(ctx context.Context, planID, actorID primitive.ObjectID) (*domain.DietPlan, error) {
	plan, err := s.dietRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("diet plan not found")
		}
		return nil, err
	}
	if plan.TrainerID != actorID && plan.MemberID != actorID {
		return nil, domain.NewAuthorizationError("this plan is not visible to you")
	}
	return plan, nil
}

func (s *planService) ListDietPlansForMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.DietPlan, error) {
	return s.dietRepo.ListByMember(ctx, memberID)
}

func (s *planService) ListDietPlansByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.DietPlan, error) {
	return s.dietRepo.ListByTrainer(ctx, trainerID)
}

// --- helpers ---

func (s *planService) lookupMember(ctx context.Context, memberID primitive.ObjectID) (*domain.User, error) {
	member, err := s.userRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("member not found")
		}
		return nil, err
	}
	if !member.IsMember() {
		return nil, domain.NewNotFoundError("member not found")
	}
	return member, nil
}
