package collaborator

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Session wraps one dashboard WebSocket connection. Writes are serialized
// through a mutex since gorilla/websocket connections are not safe for
// concurrent writers.
type Session struct {
	ID   uuid.UUID
	conn *websocket.Conn
	log  *slog.Logger

	writeMu sync.Mutex
}

// NewSession wraps conn with a freshly generated session identifier.
func NewSession(conn *websocket.Conn, log *slog.Logger) *Session {
	id := uuid.New()
	return &Session{
		ID:   id,
		conn: conn,
		log:  log.With("session_id", id.String()),
	}
}

// Send writes a single text message, dropping it (and logging) on error
// rather than letting one slow client block the board's broadcast loop.
func (s *Session) Send(payload []byte) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		s.log.Warn("collaborator: dropping dashboard message", "error", err)
	}
}

// Close closes the underlying connection.
func (s *Session) Close() error {
	return s.conn.Close()
}
