package api

import (
	"fmt"
	"net/http"

	"github.com/Vibush01/EasyFitTrack/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler exposes the usage event log.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

type LogEventRequest struct {
	Event   string `json:"event"`
	Page    string `json:"page"`
	Details string `json:"details"`
}

// LogEvent records a usage event for the calling user. All fields are
// optional; blanks default to a page-view record.
func (h *AnalyticsHandler) LogEvent(c *gin.Context) {
	var req LogEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, ok := getActorID(c)
	if !ok {
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "User role not found in context")
		return
	}

	entry, logErr := h.analyticsService.LogEvent(c.Request.Context(), userID, role, req.Event, req.Page, req.Details)
	if logErr != nil {
		handleServiceError(c, logErr)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListEvents returns the recent event log for the admin dashboard.
func (h *AnalyticsHandler) ListEvents(c *gin.Context) {
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "User role not found in context")
		return
	}

	events, listErr := h.analyticsService.ListEvents(c.Request.Context(), role)
	if listErr != nil {
		handleServiceError(c, listErr)
		return
	}
	c.JSON(http.StatusOK, events)
}
