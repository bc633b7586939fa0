package collaborator

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

// Server is the demo HTTP+WebSocket collaborator: it routes requests with
// chi, pushes board updates over gorilla/websocket, and records Prometheus
// metrics and OpenTelemetry spans around every state change it drives
// through pkg/reactive.
type Server struct {
	board   *Board
	log     *slog.Logger
	metrics *Collector
	upgrade websocket.Upgrader
}

// NewServer constructs a Server backed by its own Board. Close disposes the
// board's reactive scope.
func NewServer(log *slog.Logger, metrics *Collector) *Server {
	return &Server{
		board:   NewBoard(log),
		log:     log,
		metrics: metrics,
		upgrade: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Close tears down the server's board.
func (s *Server) Close() {
	s.board.Close()
}

// Router builds the chi mux exposing /, /tick, /ws, and /healthz.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Post("/tick", s.handleTick)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", s.handleHealthz)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("collaborator: request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.board.Snapshot())
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Delta int `json:"delta"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
	}
	if body.Delta == 0 {
		body.Delta = 1
	}

	done := s.metrics.TimeFlush()
	var state State
	TracedFlush(r.Context(), body.Delta, func() {
		state = s.board.Increment(body.Delta)
	})
	done()
	s.metrics.RecordEffectRun()

	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrade.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("collaborator: websocket upgrade failed", "error", err)
		s.metrics.RecordWebSocketError("upgrade")
		return
	}

	session := NewSession(conn, s.log)
	s.board.Subscribe(session)
	s.metrics.SessionConnected()

	defer func() {
		s.board.Unsubscribe(session)
		s.metrics.SessionDisconnected()
		session.Close()
	}()

	session.Send(mustJSON(s.board.Snapshot()))

	// Drain client messages until the socket closes; the dashboard never
	// sends anything meaningful today, but reading keeps pong control
	// frames flowing and detects disconnects promptly.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte(`{}`)
	}
	return data
}

// ListenAndServe blocks, serving the collaborator's router on addr, until
// ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}
