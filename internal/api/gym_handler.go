package api

import (
	"net/http"

	"github.com/Vibush01/EasyFitTrack/internal/service"

	"github.com/gin-gonic/gin"
)

// GymHandler exposes gym discovery, rosters, and admin management.
type GymHandler struct {
	gymService service.GymService
}

// NewGymHandler creates a new GymHandler.
func NewGymHandler(gymService service.GymService) *GymHandler {
	return &GymHandler{gymService: gymService}
}

// --- Handler Methods ---

// ListGyms returns the gym directory for the discovery screen.
func (h *GymHandler) ListGyms(c *gin.Context) {
	gyms, err := h.gymService.ListGyms(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUsersToResponse(gyms))
}

// GetGym returns a single gym's profile.
func (h *GymHandler) GetGym(c *gin.Context) {
	gymID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	gym, err := h.gymService.GetGym(c.Request.Context(), gymID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(gym))
}

// ListMembers returns the gym's member roster.
func (h *GymHandler) ListMembers(c *gin.Context) {
	gymID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	members, err := h.gymService.ListGymMembers(c.Request.Context(), gymID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUsersToResponse(members))
}

// ListTrainers returns the gym's trainer roster.
func (h *GymHandler) ListTrainers(c *gin.Context) {
	gymID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	trainers, err := h.gymService.ListGymTrainers(c.Request.Context(), gymID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUsersToResponse(trainers))
}

// JoinAsTrainer attaches the calling trainer to a gym's staff roster.
func (h *GymHandler) JoinAsTrainer(c *gin.Context) {
	gymID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	trainerID, ok := getActorID(c)
	if !ok {
		return
	}

	if err := h.gymService.JoinAsTrainer(c.Request.Context(), gymID, trainerID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Joined gym as trainer"})
}

// RemoveMember drops a member from the calling gym's roster.
func (h *GymHandler) RemoveMember(c *gin.Context) {
	gymID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseObjectIDParam(c, "memberId")
	if !ok {
		return
	}
	actorID, ok := getActorID(c)
	if !ok {
		return
	}

	if err := h.gymService.RemoveMember(c.Request.Context(), gymID, memberID, actorID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed from gym"})
}

// DeleteGym godoc
// @Summary Delete a gym (admin only)
// @Description Cascades: members and trainers are detached, announcements and pending requests removed.
// @Tags Gyms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Gym ID"
// @Success 200 {object} gin.H
// @Failure 403 {object} gin.H "Caller is not an admin"
// @Failure 404 {object} gin.H "Gym not found"
// @Router /gyms/{id} [delete]
func (h *GymHandler) DeleteGym(c *gin.Context) {
	gymID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := getActorID(c)
	if !ok {
		return
	}

	if err := h.gymService.DeleteGym(c.Request.Context(), gymID, actorID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gym deleted"})
}
