package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Vibush01/EasyFitTrack/internal/domain"
	"github.com/Vibush01/EasyFitTrack/internal/repository"
	"github.com/Vibush01/EasyFitTrack/internal/service"

	"github.com/gin-gonic/gin"
)

// AnnouncementHandler exposes the gym announcement channel.
type AnnouncementHandler struct {
	announcementService service.AnnouncementService
	userRepo            repository.UserRepository
}

// NewAnnouncementHandler creates a new AnnouncementHandler.
func NewAnnouncementHandler(announcementService service.AnnouncementService, userRepo repository.UserRepository) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService, userRepo: userRepo}
}

// --- DTOs ---

type AnnouncementMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type AnnouncementResponse struct {
	ID        string    `json:"id"`
	GymID     string    `json:"gymId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func MapAnnouncementToResponse(a *domain.Announcement) AnnouncementResponse {
	if a == nil {
		return AnnouncementResponse{}
	}
	return AnnouncementResponse{
		ID:        a.ID.Hex(),
		GymID:     a.GymID.Hex(),
		Message:   a.Message,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func MapAnnouncementsToResponse(announcements []domain.Announcement) []AnnouncementResponse {
	responses := make([]AnnouncementResponse, len(announcements))
	for i, a := range announcements {
		responses[i] = MapAnnouncementToResponse(&a)
	}
	return responses
}

// --- Handler Methods ---

// Post godoc
// @Summary Post an announcement to the gym's channel
// @Description Persists the announcement and pushes it to connected members. Live delivery is best-effort.
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param announcement body AnnouncementMessageRequest true "Message text"
// @Success 201 {object} AnnouncementResponse
// @Failure 400 {object} gin.H "Empty message"
// @Router /announcements [post]
func (h *AnnouncementHandler) Post(c *gin.Context) {
	var req AnnouncementMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	gymID, ok := getActorID(c)
	if !ok {
		return
	}

	created, err := h.announcementService.Post(c.Request.Context(), gymID, req.Message)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapAnnouncementToResponse(created))
}

// Update replaces an announcement's message. Only the authoring gym may edit.
func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req AnnouncementMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	announcementID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := getActorID(c)
	if !ok {
		return
	}

	updated, err := h.announcementService.Update(c.Request.Context(), announcementID, actorID, req.Message)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapAnnouncementToResponse(updated))
}

// Delete removes an announcement. Only the authoring gym may delete.
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	announcementID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := getActorID(c)
	if !ok {
		return
	}

	if err := h.announcementService.Delete(c.Request.Context(), announcementID, actorID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}

// ListByGym returns a gym's announcement history, newest first.
func (h *AnnouncementHandler) ListByGym(c *gin.Context) {
	gymID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	announcements, err := h.announcementService.List(c.Request.Context(), gymID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapAnnouncementsToResponse(announcements))
}

// ListFeed returns the caller's announcement feed: gyms see their own
// channel, members and trainers see the channel of the gym they belong to.
func (h *AnnouncementHandler) ListFeed(c *gin.Context) {
	actorID, ok := getActorID(c)
	if !ok {
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Internal server error.")
		return
	}

	gymID := actorID
	if !user.IsGym() {
		if user.GymID == nil {
			abortWithError(c, http.StatusConflict, "Join a gym to see its announcements")
			return
		}
		gymID = *user.GymID
	}

	announcements, err := h.announcementService.List(c.Request.Context(), gymID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapAnnouncementsToResponse(announcements))
}
