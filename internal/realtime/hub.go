package realtime

import (
	"log"
	"sync"
)

// Envelope is the wire frame pushed to connected sessions.
type Envelope struct {
	Event   string `json:"event"`
	GymID   string `json:"gymId"`
	Payload any    `json:"payload"`
}

// Hub is the connection registry for the announcement broadcast channel. It
// is created at server start, shared by the websocket handler and the
// announcement service, and torn down at shutdown.
//
// Each connected session belongs to exactly one gym room, fixed at connect
// time from the member's profile. Fan-out is at-most-once, best-effort: a
// session whose send buffer is full is skipped, and a disconnected client
// misses events until its next full fetch. Nothing here blocks the poster.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Session]struct{}
	closed bool
}

// NewHub creates an empty connection registry.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Session]struct{}),
	}
}

// Publish fans an event out to every session in the gym's room. Implements
// service.Publisher. Safe to call from any goroutine; never blocks on a slow
// subscriber.
func (h *Hub) Publish(gymID string, event string, payload any) {
	env := Envelope{Event: event, GymID: gymID, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for session := range h.rooms[gymID] {
		select {
		case session.send <- env:
		default:
			// Buffer full: drop the event for this session rather than
			// stall the poster. The client converges on its next fetch.
		}
	}
}

// register adds a session to its gym room.
func (h *Hub) register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(s.send)
		return
	}
	room, ok := h.rooms[s.gymID]
	if !ok {
		room = make(map[*Session]struct{})
		h.rooms[s.gymID] = room
	}
	room[s] = struct{}{}
	log.Printf("realtime: session %s joined gym room %s (%d connected)", s.id, s.gymID, len(room))
}

// unregister removes a session and closes its send channel.
func (h *Hub) unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[s.gymID]
	if !ok {
		return
	}
	if _, ok := room[s]; !ok {
		return
	}
	delete(room, s)
	if len(room) == 0 {
		delete(h.rooms, s.gymID)
	}
	close(s.send)
	log.Printf("realtime: session %s left gym room %s", s.id, s.gymID)
}

// ConnectedCount reports how many sessions are in a gym's room.
func (h *Hub) ConnectedCount(gymID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[gymID])
}

// Close disconnects every session. Called once during server shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for gymID, room := range h.rooms {
		for s := range room {
			close(s.send)
		}
		delete(h.rooms, gymID)
	}
}
