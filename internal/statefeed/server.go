package statefeed

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// envelope is the wire shape of every feed message.
type envelope struct {
	Type string     `json:"type"`
	Ts   *time.Time `json:"ts,omitempty"`
	Data any        `json:"data,omitempty"`
}

// Server serves the WebSocket state feed on /ws. snapshotFn produces
// the payload for the state_init message sent to each new client.
type Server struct {
	logger     *slog.Logger
	hub        *Hub
	httpServer *http.Server
	snapshotFn func() any
	upgrader   websocket.Upgrader
	cancel     context.CancelFunc
}

// NewServer constructs a feed server listening on addr.
func NewServer(logger *slog.Logger, addr string, snapshotFn func() any) *Server {
	s := &Server{
		logger:     logger,
		hub:        NewHub(logger, HubConfig{}),
		snapshotFn: snapshotFn,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The feed is read-only local telemetry; any origin may subscribe.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start runs the hub and the HTTP listener in the background.
func (s *Server) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.hub.Run(ctx)
	go func() {
		s.logger.Info("state feed listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("state feed server failed", "error", err)
		}
	}()
}

// Stop shuts down the listener and disconnects all clients.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = s.httpServer.Shutdown(ctx)
	if s.cancel != nil {
		s.cancel()
	}
}

// Broadcast fans out an event to all connected clients.
// It never blocks the caller.
func (s *Server) Broadcast(event string, data any) {
	now := time.Now().UTC()
	msg, err := json.Marshal(envelope{Type: event, Ts: &now, Data: data})
	if err != nil {
		s.logger.Error("state feed marshal failed", "event", event, "error", err)
		return
	}
	s.hub.BroadcastBytes(msg)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("state feed upgrade failed", "remote_addr", r.RemoteAddr, "error", err)
		return
	}

	client := &Client{
		hub:        s.hub,
		conn:       conn,
		send:       make(chan []byte, s.hub.sendBuf),
		remoteAddr: r.RemoteAddr,
		logger:     s.logger,
	}

	s.hub.register <- client

	// The pumps outlive the request handler; they stop when the
	// connection drops or the hub shuts the client down.
	go client.writePump()
	go client.readPump()

	now := time.Now().UTC()
	init, err := json.Marshal(envelope{Type: "state_init", Ts: &now, Data: s.snapshotFn()})
	if err != nil {
		s.logger.Error("state feed snapshot marshal failed", "error", err)
		return
	}
	select {
	case client.send <- init:
	default:
		s.hub.removeClient(client, "init_send_full")
	}
}
