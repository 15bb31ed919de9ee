package api

import (
	"errors"
	"net/http"

	"github.com/Vibush01/EasyFitTrack/internal/realtime"
	"github.com/Vibush01/EasyFitTrack/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Token auth happens in the middleware; origin checks are the reverse
	// proxy's job in this deployment.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades authenticated clients into the realtime hub.
type WSHandler struct {
	hub      *realtime.Hub
	userRepo repository.UserRepository
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *realtime.Hub, userRepo repository.UserRepository) *WSHandler {
	return &WSHandler{hub: hub, userRepo: userRepo}
}

// Subscribe upgrades the connection and joins the caller to their gym's room.
// Gyms join their own room; members and trainers join the room of the gym
// they belong to. Callers with no gym association are rejected before the
// upgrade.
func (h *WSHandler) Subscribe(c *gin.Context) {
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

	var gymID string
	switch {
	case user.IsGym():
		gymID = user.ID.Hex()
	case user.GymID != nil:
		gymID = user.GymID.Hex()
	default:
		abortWithError(c, http.StatusConflict, "Join a gym before subscribing to announcements")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the failure response.
		return
	}

	// Blocks until the peer disconnects.
	h.hub.Serve(conn, gymID)
}
