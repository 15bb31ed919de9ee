package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Vibush01/EasyFitTrack/internal/domain"
	"github.com/Vibush01/EasyFitTrack/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler exposes plan requests and workout/diet plan CRUD.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

type RequestPlanRequest struct {
	TrainerID   string          `json:"trainerId" binding:"required"`
	RequestType domain.PlanType `json:"requestType" binding:"required,oneof=workout diet"`
}

type PlanRequestResponse struct {
	ID          string               `json:"id"`
	MemberID    string               `json:"memberId"`
	TrainerID   string               `json:"trainerId"`
	RequestType domain.PlanType      `json:"requestType"`
	Status      domain.RequestStatus `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
	ResolvedAt  *time.Time           `json:"resolvedAt,omitempty"`
}

func MapPlanRequestToResponse(r *domain.PlanRequest) PlanRequestResponse {
	if r == nil {
		return PlanRequestResponse{}
	}
	return PlanRequestResponse{
		ID:          r.ID.Hex(),
		MemberID:    r.MemberID.Hex(),
		TrainerID:   r.TrainerID.Hex(),
		RequestType: r.RequestType,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		ResolvedAt:  r.ResolvedAt,
	}
}

func MapPlanRequestsToResponse(requests []domain.PlanRequest) []PlanRequestResponse {
	responses := make([]PlanRequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = MapPlanRequestToResponse(&r)
	}
	return responses
}

type WorkoutPlanPayload struct {
	MemberID    string                `json:"memberId" binding:"required"`
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description"`
	Exercises   []domain.ExerciseItem `json:"exercises"`
}

type DietPlanPayload struct {
	MemberID    string            `json:"memberId" binding:"required"`
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Meals       []domain.MealItem `json:"meals"`
}

type WorkoutPlanResponse struct {
	ID          string                `json:"id"`
	TrainerID   string                `json:"trainerId"`
	MemberID    string                `json:"memberId"`
	GymID       *string               `json:"gymId,omitempty"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Exercises   []domain.ExerciseItem `json:"exercises"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

type DietPlanResponse struct {
	ID          string            `json:"id"`
	TrainerID   string            `json:"trainerId"`
	MemberID    string            `json:"memberId"`
	GymID       *string           `json:"gymId,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Meals       []domain.MealItem `json:"meals"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func MapWorkoutPlanToResponse(p *domain.WorkoutPlan) WorkoutPlanResponse {
	if p == nil {
		return WorkoutPlanResponse{}
	}
	resp := WorkoutPlanResponse{
		ID:          p.ID.Hex(),
		TrainerID:   p.TrainerID.Hex(),
		MemberID:    p.MemberID.Hex(),
		Title:       p.Title,
		Description: p.Description,
		Exercises:   p.Exercises,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.GymID != nil {
		hex := p.GymID.Hex()
		resp.GymID = &hex
	}
	return resp
}

func MapDietPlanToResponse(p *domain.DietPlan) DietPlanResponse {
	if p == nil {
		return DietPlanResponse{}
	}
	resp := DietPlanResponse{
		ID:          p.ID.Hex(),
		TrainerID:   p.TrainerID.Hex(),
		MemberID:    p.MemberID.Hex(),
		Title:       p.Title,
		Description: p.Description,
		Meals:       p.Meals,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.GymID != nil {
		hex := p.GymID.Hex()
		resp.GymID = &hex
	}
	return resp
}

// --- Plan request handlers ---

// RequestPlan creates a pending workout/diet plan request from a member.
func (h *PlanHandler) RequestPlan(c *gin.Context) {
	var req RequestPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	memberID, ok := getActorID(c)
	if !ok {
		return
	}
	trainerID, err := objectIDFromBody(c, req.TrainerID, "trainerId")
	if err != nil {
		return
	}

	created, err := h.planService.RequestPlan(c.Request.Context(), memberID, trainerID, req.RequestType)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapPlanRequestToResponse(created))
}

// ListPlanRequests returns plan requests scoped to the caller's role.
func (h *PlanHandler) ListPlanRequests(c *gin.Context) {
	actorID, ok := getActorID(c)
	if !ok {
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "User role not found in context")
		return
	}

	var (
		requests []domain.PlanRequest
		listErr  error
	)
	switch role {
	case domain.RoleTrainer:
		requests, listErr = h.planService.ListTrainerRequests(c.Request.Context(), actorID)
	case domain.RoleMember:
		requests, listErr = h.planService.ListMemberRequests(c.Request.Context(), actorID)
	default:
		abortWithError(c, http.StatusForbidden, "Only trainers and members can list plan requests")
		return
	}
	if listErr != nil {
		handleServiceError(c, listErr)
		return
	}
	c.JSON(http.StatusOK, MapPlanRequestsToResponse(requests))
}

// ResolvePlanRequest approves or denies a pending plan request. Approval
// never creates the plan itself.
func (h *PlanHandler) ResolvePlanRequest(c *gin.Context) {
	var req ResolveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	requestID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	trainerID, ok := getActorID(c)
	if !ok {
		return
	}

	resolved, err := h.planService.ResolveRequest(c.Request.Context(), requestID, req.Decision, trainerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanRequestToResponse(resolved))
}

// --- Workout plan handlers ---

func (h *PlanHandler) CreateWorkoutPlan(c *gin.Context) {
	var req WorkoutPlanPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, ok := getActorID(c)
	if !ok {
		return
	}
	memberID, err := objectIDFromBody(c, req.MemberID, "memberId")
	if err != nil {
		return
	}

	plan, err := h.planService.CreateWorkoutPlan(c.Request.Context(), trainerID, memberID, req.Title, req.Description, req.Exercises)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutPlanToResponse(plan))
}

func (h *PlanHandler) GetWorkoutPlan(c *gin.Context) {
	planID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := getActorID(c)
	if !ok {
		return
	}

	plan, err := h.planService.GetWorkoutPlan(c.Request.Context(), planID, actorID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutPlanToResponse(plan))
}

// ListWorkoutPlans returns the caller's plans: authored for trainers, received
// for members.
func (h *PlanHandler) ListWorkoutPlans(c *gin.Context) {
	actorID, ok := getActorID(c)
	if !ok {
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "User role not found in context")
		return
	}

	var (
		plans   []domain.WorkoutPlan
		listErr error
	)
	switch role {
	case domain.RoleTrainer:
		plans, listErr = h.planService.ListWorkoutPlansByTrainer(c.Request.Context(), actorID)
	case domain.RoleMember:
		plans, listErr = h.planService.ListWorkoutPlansForMember(c.Request.Context(), actorID)
	default:
		abortWithError(c, http.StatusForbidden, "Only trainers and members can list workout plans")
		return
	}
	if listErr != nil {
		handleServiceError(c, listErr)
		return
	}

	responses := make([]WorkoutPlanResponse, len(plans))
	for i := range plans {
		responses[i] = MapWorkoutPlanToResponse(&plans[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *PlanHandler) UpdateWorkoutPlan(c *gin.Context) {
	var req WorkoutPlanPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	planID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	trainerID, ok := getActorID(c)
	if !ok {
		return
	}

	plan, err := h.planService.UpdateWorkoutPlan(c.Request.Context(), trainerID, planID, req.Title, req.Description, req.Exercises)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutPlanToResponse(plan))
}

func (h *PlanHandler) DeleteWorkoutPlan(c *gin.Context) {
	planID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	trainerID, ok := getActorID(c)
	if !ok {
		return
	}

	if err := h.planService.DeleteWorkoutPlan(c.Request.Context(), trainerID, planID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout plan deleted"})
}

// --- Diet plan handlers ---

func (h *PlanHandler) CreateDietPlan(c *gin.Context) {
	var req DietPlanPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, ok := getActorID(c)
	if !ok {
		return
	}
	memberID, err := objectIDFromBody(c, req.MemberID, "memberId")
	if err != nil {
		return
	}

	plan, err := h.planService.CreateDietPlan(c.Request.Context(), trainerID, memberID, req.Title, req.Description, req.Meals)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapDietPlanToResponse(plan))
}

func (h *PlanHandler) GetDietPlan(c *gin.Context) {
	planID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := getActorID(c)
	if !ok {
		return
	}

	plan, err := h.planService.GetDietPlan(c.Request.Context(), planID, actorID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapDietPlanToResponse(plan))
}

func (h *PlanHandler) ListDietPlans(c *gin.Context) {
	actorID, ok := getActorID(c)
	if !ok {
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "User role not found in context")
		return
	}

	var (
		plans   []domain.DietPlan
		listErr error
	)
	switch role {
	case domain.RoleTrainer:
		plans, listErr = h.planService.ListDietPlansByTrainer(c.Request.Context(), actorID)
	case domain.RoleMember:
		plans, listErr = h.planService.ListDietPlansForMember(c.Request.Context(), actorID)
	default:
		abortWithError(c, http.StatusForbidden, "Only trainers and members can list diet plans")
		return
	}
	if listErr != nil {
		handleServiceError(c, listErr)
		return
	}

	responses := make([]DietPlanResponse, len(plans))
	for i := range plans {
		responses[i] = MapDietPlanToResponse(&plans[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *PlanHandler) UpdateDietPlan(c *gin.Context) {
	var req DietPlanPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	planID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	trainerID, ok := getActorID(c)
	if !ok {
		return
	}

	plan, err := h.planService.UpdateDietPlan(c.Request.Context(), trainerID, planID, req.Title, req.Description, req.Meals)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapDietPlanToResponse(plan))
}

func (h *PlanHandler) DeleteDietPlan(c *gin.Context) {
	planID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	trainerID, ok := getActorID(c)
	if !ok {
		return
	}

	if err := h.planService.DeleteDietPlan(c.Request.Context(), trainerID, planID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Diet plan deleted"})
}
