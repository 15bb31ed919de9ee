package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Vibush01/EasyFitTrack/internal/domain"
	"github.com/Vibush01/EasyFitTrack/internal/service"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler exposes the trainer schedule and booking engine.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// --- DTOs ---

type PostSlotRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

type SlotResponse struct {
	ID        string            `json:"id"`
	TrainerID string            `json:"trainerId"`
	StartTime time.Time         `json:"startTime"`
	EndTime   time.Time         `json:"endTime"`
	Status    domain.SlotStatus `json:"status"`
	BookedBy  *string           `json:"bookedBy,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

func MapSlotToResponse(s *domain.ScheduleSlot) SlotResponse {
	if s == nil {
		return SlotResponse{}
	}
	resp := SlotResponse{
		ID:        s.ID.Hex(),
		TrainerID: s.TrainerID.Hex(),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
	if s.BookedBy != nil {
		hex := s.BookedBy.Hex()
		resp.BookedBy = &hex
	}
	return resp
}

func MapSlotsToResponse(slots []domain.ScheduleSlot) []SlotResponse {
	responses := make([]SlotResponse, len(slots))
	for i, s := range slots {
		responses[i] = MapSlotToResponse(&s)
	}
	return responses
}

// --- Handler Methods ---

// PostSlot godoc
// @Summary Post an availability slot
// @Description Trainers offer a time window for booking. Overlapping windows are permitted.
// @Tags Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slot body PostSlotRequest true "Slot window"
// @Success 201 {object} SlotResponse
// @Failure 400 {object} gin.H "startTime must be before endTime"
// @Router /schedules [post]
func (h *ScheduleHandler) PostSlot(c *gin.Context) {
	var req PostSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, ok := getActorID(c)
	if !ok {
		return
	}

	slot, err := h.scheduleService.PostSlot(c.Request.Context(), trainerID, req.StartTime, req.EndTime)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapSlotToResponse(slot))
}

// ListOwnSlots returns all of the calling trainer's slots.
func (h *ScheduleHandler) ListOwnSlots(c *gin.Context) {
	trainerID, ok := getActorID(c)
	if !ok {
		return
	}
	slots, err := h.scheduleService.ListTrainerSlots(c.Request.Context(), trainerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSlotsToResponse(slots))
}

// ListTrainerAvailability returns a trainer's open slots for the booking screen.
func (h *ScheduleHandler) ListTrainerAvailability(c *gin.Context) {
	trainerID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	slots, err := h.scheduleService.ListAvailableSlots(c.Request.Context(), trainerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSlotsToResponse(slots))
}

// DeleteSlot removes an available slot owned by the calling trainer.
// Booked slots cannot be deleted.
func (h *ScheduleHandler) DeleteSlot(c *gin.Context) {
	slotID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := getActorID(c)
	if !ok {
		return
	}

	if err := h.scheduleService.DeleteSlot(c.Request.Context(), slotID, actorID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot deleted"})
}

// BookSlot godoc
// @Summary Book an available slot
// @Description Atomic: under concurrent attempts exactly one member wins; the rest get a conflict.
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 200 {object} SlotResponse
// @Failure 404 {object} gin.H "Slot not found"
// @Failure 409 {object} gin.H "Slot no longer available"
// @Router /schedules/{id}/book [post]
func (h *ScheduleHandler) BookSlot(c *gin.Context) {
	slotID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := getActorID(c)
	if !ok {
		return
	}

	slot, err := h.scheduleService.BookSlot(c.Request.Context(), slotID, memberID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSlotToResponse(slot))
}

// ListOwnBookings returns the calling member's booked sessions.
func (h *ScheduleHandler) ListOwnBookings(c *gin.Context) {
	memberID, ok := getActorID(c)
	if !ok {
		return
	}
	slots, err := h.scheduleService.ListMemberBookings(c.Request.Context(), memberID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSlotsToResponse(slots))
}
