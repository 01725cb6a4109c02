package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/floatbar/internal/config"
	"github.com/1broseidon/floatbar/internal/runtimepath"
	"github.com/1broseidon/floatbar/internal/toolbar"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	cfg          *config.Config
	cfgMu        sync.RWMutex
	ctrl         *toolbar.Controller
	startTime    time.Time
	reloadChan   chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(cfg *config.Config, ctrl *toolbar.Controller, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		ctrl:       ctrl,
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandPress:
		return s.handlePress(req.Payload)
	case CommandSetVoice:
		return s.handleSetVoice(req.Payload)
	case CommandSetSpeed:
		return s.handleSetSpeed(req.Payload)
	case CommandToggle:
		s.ctrl.ToggleVisible()
		resp, _ := NewOKResponse(nil)
		return resp
	case CommandTogglePanel:
		s.ctrl.TogglePanel()
		resp, _ := NewOKResponse(nil)
		return resp
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleReload reloads the configuration
func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	newCfg, err := config.Load()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	s.cfgMu.Lock()
	s.cfg = newCfg
	s.cfgMu.Unlock()

	s.ctrl.Reload(newCfg)

	// Notify the main daemon via channel (non-blocking)
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	log.Println("IPC: Config reloaded successfully")

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	resp, _ := NewOKResponse(StatusFromController(s.ctrl.Status()))
	return resp
}

// StatusFromController converts a controller snapshot to the wire shape.
func StatusFromController(st toolbar.Status) StatusData {
	return StatusData{
		PlaybackState: st.State.String(),
		X:             st.X,
		Y:             st.Y,
		Visible:       st.Visible,
		PanelExpanded: st.Expanded,
		Voice:         st.Voice,
		Speed:         st.Speed,
		UptimeSeconds: int64(time.Since(st.Started).Seconds()),
		DaemonRunning: true,
	}
}

func (s *Server) handlePress(payload json.RawMessage) *Response {
	var press PressPayload
	if err := json.Unmarshal(payload, &press); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid press payload: %v", err))
	}
	if press.Key == "" {
		return NewErrorResponse("key is required")
	}

	log.Printf("IPC: press %q", press.Key)
	s.ctrl.PressKey(press.Key)

	resp, _ := NewOKResponse(StatusFromController(s.ctrl.Status()))
	return resp
}

func (s *Server) handleSetVoice(payload json.RawMessage) *Response {
	var req SetVoicePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid voice payload: %v", err))
	}
	if req.Voice == "" {
		return NewErrorResponse("voice is required")
	}
	if !s.ctrl.SelectVoice(req.Voice) {
		return NewErrorResponse(fmt.Sprintf("Unknown voice: %s", req.Voice))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleSetSpeed(payload json.RawMessage) *Response {
	var req SetSpeedPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid speed payload: %v", err))
	}
	if req.Speed == "" {
		return NewErrorResponse("speed is required")
	}
	if !s.ctrl.SelectSpeed(req.Speed) {
		return NewErrorResponse(fmt.Sprintf("Unknown speed: %s", req.Speed))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

// GetConfig returns the current config (thread-safe)
func (s *Server) GetConfig() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// UpdateConfig updates the config (thread-safe)
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.cfg = cfg
}
