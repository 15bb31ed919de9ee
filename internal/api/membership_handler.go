package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Vibush01/EasyFitTrack/internal/domain"
	"github.com/Vibush01/EasyFitTrack/internal/service"

	"github.com/gin-gonic/gin"
)

// MembershipHandler exposes the membership request state machine.
type MembershipHandler struct {
	membershipService service.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(membershipService service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// --- DTOs ---

type CreateMembershipRequestRequest struct {
	GymID    string               `json:"gymId" binding:"required"`
	Duration domain.DurationLabel `json:"duration" binding:"required"`
}

type ResolveRequestRequest struct {
	Decision service.Decision `json:"decision" binding:"required,oneof=approve deny"`
}

type MembershipRequestResponse struct {
	ID                string               `json:"id"`
	MemberID          string               `json:"memberId"`
	GymID             string               `json:"gymId"`
	RequestedDuration domain.DurationLabel `json:"requestedDuration"`
	Status            domain.RequestStatus `json:"status"`
	CreatedAt         time.Time            `json:"createdAt"`
	ResolvedAt        *time.Time           `json:"resolvedAt,omitempty"`
}

func MapMembershipRequestToResponse(r *domain.MembershipRequest) MembershipRequestResponse {
	if r == nil {
		return MembershipRequestResponse{}
	}
	return MembershipRequestResponse{
		ID:                r.ID.Hex(),
		MemberID:          r.MemberID.Hex(),
		GymID:             r.GymID.Hex(),
		RequestedDuration: r.RequestedDuration,
		Status:            r.Status,
		CreatedAt:         r.CreatedAt,
		ResolvedAt:        r.ResolvedAt,
	}
}

func MapMembershipRequestsToResponse(requests []domain.MembershipRequest) []MembershipRequestResponse {
	responses := make([]MembershipRequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = MapMembershipRequestToResponse(&r)
	}
	return responses
}

// --- Handler Methods ---

// CreateRequest godoc
// @Summary Request to join or renew membership with a gym
// @Description Members create a join/renewal request with one of the five duration labels.
// @Tags Membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMembershipRequestRequest true "Gym and requested duration"
// @Success 201 {object} MembershipRequestResponse
// @Failure 400 {object} gin.H "Invalid input (unknown duration, malformed gym ID)"
// @Failure 404 {object} gin.H "Gym not found"
// @Failure 409 {object} gin.H "A pending request already exists for this gym"
// @Router /membership-requests [post]
func (h *MembershipHandler) CreateRequest(c *gin.Context) {
	var req CreateMembershipRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	memberID, ok := getActorID(c)
	if !ok {
		return
	}
	gymID, err := objectIDFromBody(c, req.GymID, "gymId")
	if err != nil {
		return
	}

	created, err := h.membershipService.CreateRequest(c.Request.Context(), memberID, gymID, req.Duration)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapMembershipRequestToResponse(created))
}

// ListRequests returns membership requests scoped to the caller's role:
// gyms see requests targeting them, members see their own.
func (h *MembershipHandler) ListRequests(c *gin.Context) {
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
		requests []domain.MembershipRequest
		listErr  error
	)
	switch role {
	case domain.RoleGym:
		requests, listErr = h.membershipService.ListGymRequests(c.Request.Context(), actorID)
	case domain.RoleMember:
		requests, listErr = h.membershipService.ListMemberRequests(c.Request.Context(), actorID)
	default:
		abortWithError(c, http.StatusForbidden, "Only gyms and members can list membership requests")
		return
	}
	if listErr != nil {
		handleServiceError(c, listErr)
		return
	}

	c.JSON(http.StatusOK, MapMembershipRequestsToResponse(requests))
}

// ResolveRequest godoc
// @Summary Approve or deny a pending membership request
// @Description Terminal transition; approval writes the member's membership window from the approval time.
// @Tags Membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param decision body ResolveRequestRequest true "approve or deny"
// @Success 200 {object} MembershipRequestResponse
// @Failure 403 {object} gin.H "Actor is not the owning gym or one of its trainers"
// @Failure 404 {object} gin.H "Request not found"
// @Failure 409 {object} gin.H "Request already resolved"
// @Router /membership-requests/{id} [put]
func (h *MembershipHandler) ResolveRequest(c *gin.Context) {
	var req ResolveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	requestID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := getActorID(c)
	if !ok {
		return
	}

	resolved, err := h.membershipService.ResolveRequest(c.Request.Context(), requestID, req.Decision, actorID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapMembershipRequestToResponse(resolved))
}
