package api

import (
	"fmt"
	"net/http"

	"github.com/Vibush01/EasyFitTrack/internal/service"

	"github.com/gin-gonic/gin"
)

// MacroHandler exposes member nutrition logging.
type MacroHandler struct {
	macroService service.MacroService
}

// NewMacroHandler creates a new MacroHandler.
func NewMacroHandler(macroService service.MacroService) *MacroHandler {
	return &MacroHandler{macroService: macroService}
}

type LogMacrosRequest struct {
	Calories float64 `json:"calories" binding:"min=0"`
	Protein  float64 `json:"protein" binding:"min=0"`
	Carbs    float64 `json:"carbs" binding:"min=0"`
	Fats     float64 `json:"fats" binding:"min=0"`
}

// LogMacros appends a nutrition entry for the calling member.
func (h *MacroHandler) LogMacros(c *gin.Context) {
	var req LogMacrosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	memberID, ok := getActorID(c)
	if !ok {
		return
	}

	entry, err := h.macroService.LogMacros(c.Request.Context(), memberID, service.MacroInput{
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fats:     req.Fats,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListMacros returns the calling member's nutrition history, newest first.
func (h *MacroHandler) ListMacros(c *gin.Context) {
	memberID, ok := getActorID(c)
	if !ok {
		return
	}

	entries, err := h.macroService.ListMacros(c.Request.Context(), memberID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
