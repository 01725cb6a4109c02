package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Appearance controls how the toolbar window looks.
type Appearance struct {
	ButtonSize int     `yaml:"button_size"` // square button edge in pixels
	Opacity    float64 `yaml:"opacity"`     // 0.0 (invisible) to 1.0 (opaque)
	StayOnTop  bool    `yaml:"stay_on_top"`
	InitialX   int     `yaml:"initial_x"`
	InitialY   int     `yaml:"initial_y"`
}

// Config holds the application configuration.
type Config struct {
	// Commands maps command keys to shell command lines. Transport keys
	// (play, pause, resume, stop, rewind, fast_forward, record) are
	// well-known; voice.<name> and speed.<value> keys are derived from the
	// Voices and Speeds lists; anything else is launched as-is when pressed
	// via IPC.
	Commands map[string]string `yaml:"commands"`

	Appearance Appearance `yaml:"appearance"`

	DragThreshold    int `yaml:"drag_threshold"`     // Manhattan dead zone in pixels
	CommandSpacingMS int `yaml:"command_spacing_ms"` // delay between queued launches

	Voices []string `yaml:"voices"`
	Speeds []string `yaml:"speeds"`

	ToggleHotkey string `yaml:"toggle_hotkey"`
	PanelHotkey  string `yaml:"panel_hotkey"`

	// StatusListen enables the WebSocket state feed when non-empty,
	// e.g. "127.0.0.1:7465".
	StatusListen string `yaml:"status_listen,omitempty"`

	LogLevel string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Commands: map[string]string{
			"play":         "",
			"pause":        "",
			"resume":       "",
			"stop":         "",
			"rewind":       "",
			"fast_forward": "",
		},
		Appearance: Appearance{
			ButtonSize: 40,
			Opacity:    0.9,
			StayOnTop:  true,
			InitialX:   100,
			InitialY:   100,
		},
		DragThreshold:    5,
		CommandSpacingMS: 150,
		Voices:           nil,
		Speeds:           nil,
		ToggleHotkey:     "Mod4-Mod1-m",
		PanelHotkey:      "Mod4-Mod1-o",
		LogLevel:         "info",
	}
}

// Command resolves a command key to its configured shell command line.
// Missing and empty entries both report ok=false.
func (c *Config) Command(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	cmd, ok := c.Commands[key]
	if !ok || strings.TrimSpace(cmd) == "" {
		return "", false
	}
	return cmd, true
}

// VoiceCommandKey returns the command key that selects the given voice.
func VoiceCommandKey(name string) string { return "voice." + name }

// SpeedCommandKey returns the command key that selects the given speed.
func SpeedCommandKey(value string) string { return "speed." + value }

// HasVoice reports whether name is one of the configured voices.
func (c *Config) HasVoice(name string) bool {
	for _, v := range c.Voices {
		if v == name {
			return true
		}
	}
	return false
}

// HasSpeed reports whether value is one of the configured speeds.
func (c *Config) HasSpeed(value string) bool {
	for _, s := range c.Speeds {
		if s == value {
			return true
		}
	}
	return false
}

// Save writes the configuration to the standard location.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.Commands == nil {
		return &ValidationError{Path: "commands", Err: fmt.Errorf("commands must not be null")}
	}
	for key := range c.Commands {
		if strings.TrimSpace(key) == "" {
			return &ValidationError{Path: "commands", Err: fmt.Errorf("commands contains an empty key")}
		}
	}
	if c.Appearance.ButtonSize < 16 || c.Appearance.ButtonSize > 256 {
		return &ValidationError{Path: "appearance.button_size", Err: fmt.Errorf("button_size must be between 16 and 256")}
	}
	if c.Appearance.Opacity < 0 || c.Appearance.Opacity > 1 {
		return &ValidationError{Path: "appearance.opacity", Err: fmt.Errorf("opacity must be between 0.0 and 1.0")}
	}
	if c.Appearance.InitialX < 0 || c.Appearance.InitialY < 0 {
		return &ValidationError{Path: "appearance", Err: fmt.Errorf("initial_x and initial_y must be >= 0")}
	}
	if c.DragThreshold < 1 {
		return &ValidationError{Path: "drag_threshold", Err: fmt.Errorf("drag_threshold must be >= 1")}
	}
	if c.CommandSpacingMS < 0 {
		return &ValidationError{Path: "command_spacing_ms", Err: fmt.Errorf("command_spacing_ms must be >= 0")}
	}
	for i, v := range c.Voices {
		if strings.TrimSpace(v) == "" {
			return &ValidationError{Path: fmt.Sprintf("voices[%d]", i), Err: fmt.Errorf("voice name must not be empty")}
		}
	}
	for i, s := range c.Speeds {
		if strings.TrimSpace(s) == "" {
			return &ValidationError{Path: fmt.Sprintf("speeds[%d]", i), Err: fmt.Errorf("speed value must not be empty")}
		}
	}
	if c.ToggleHotkey == "" {
		return &ValidationError{Path: "toggle_hotkey", Err: fmt.Errorf("toggle_hotkey is required")}
	}
	if c.StatusListen != "" && !strings.Contains(c.StatusListen, ":") {
		return &ValidationError{Path: "status_listen", Err: fmt.Errorf("status_listen must be host:port")}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}
