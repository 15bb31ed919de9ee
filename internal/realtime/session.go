package realtime

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Outbound event buffer per session; overflow drops events.
	sendBufferSize = 16
)

// Session is one connected member's websocket subscription to a gym room.
type Session struct {
	id    string
	gymID string
	conn  *websocket.Conn
	send  chan Envelope
	hub   *Hub
}

// Serve attaches an upgraded websocket connection to the hub and blocks until
// the peer disconnects. The session joins the single gym room given; clients
// cannot switch rooms without reconnecting.
func (h *Hub) Serve(conn *websocket.Conn, gymID string) {
	s := &Session{
		id:    uuid.NewString(),
		gymID: gymID,
		conn:  conn,
		send:  make(chan Envelope, sendBufferSize),
	}
	s.hub = h
	h.register(s)

	go s.writePump()
	s.readPump()
}

// readPump drains inbound frames. The channel is push-only; client frames are
// discarded, but reading is what detects the disconnect.
func (s *Session) readPump() {
	defer func() {
		s.hub.unregister(s)
		s.conn.Close()
	}()
	s.conn.SetReadLimit(512)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards hub events to the peer and keeps the connection alive
// with pings.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()
	for {
		select {
		case env, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the session.
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(env); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
