package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload      CommandType = "RELOAD"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandPress       CommandType = "PRESS"
	CommandSetVoice    CommandType = "SET_VOICE"
	CommandSetSpeed    CommandType = "SET_SPEED"
	CommandToggle      CommandType = "TOGGLE"
	CommandTogglePanel CommandType = "TOGGLE_PANEL"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	PlaybackState string `json:"playback_state"`
	X             int    `json:"x"`
	Y             int    `json:"y"`
	Visible       bool   `json:"visible"`
	PanelExpanded bool   `json:"panel_expanded"`
	Voice         string `json:"voice,omitempty"`
	Speed         string `json:"speed,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	DaemonRunning bool   `json:"daemon_running"`
}

// PressPayload represents the payload for the PRESS command
type PressPayload struct {
	Key string `json:"key"`
}

// SetVoicePayload represents the payload for the SET_VOICE command
type SetVoicePayload struct {
	Voice string `json:"voice"`
}

// SetSpeedPayload represents the payload for the SET_SPEED command
type SetSpeedPayload struct {
	Speed string `json:"speed"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
