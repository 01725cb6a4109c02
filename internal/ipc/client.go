package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/floatbar/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	_, err := c.sendRequest(&Request{Command: CommandReload})
	return err
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// Press routes a button key through the daemon and returns the new status.
func (c *Client) Press(key string) (*StatusData, error) {
	payload, err := json.Marshal(PressPayload{Key: key})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal press payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandPress, Payload: payload})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// SetVoice selects a configured voice.
func (c *Client) SetVoice(voice string) error {
	payload, err := json.Marshal(SetVoicePayload{Voice: voice})
	if err != nil {
		return fmt.Errorf("failed to marshal voice payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandSetVoice, Payload: payload})
	return err
}

// SetSpeed selects a configured speed.
func (c *Client) SetSpeed(speed string) error {
	payload, err := json.Marshal(SetSpeedPayload{Speed: speed})
	if err != nil {
		return fmt.Errorf("failed to marshal speed payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandSetSpeed, Payload: payload})
	return err
}

// Toggle shows or hides the toolbar window.
func (c *Client) Toggle() error {
	_, err := c.sendRequest(&Request{Command: CommandToggle})
	return err
}

// TogglePanel expands or collapses the options panel.
func (c *Client) TogglePanel() error {
	_, err := c.sendRequest(&Request{Command: CommandTogglePanel})
	return err
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
