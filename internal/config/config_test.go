package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	def := DefaultConfig()
	if res.Config.Appearance.ButtonSize != def.Appearance.ButtonSize {
		t.Errorf("button_size = %d, want default %d", res.Config.Appearance.ButtonSize, def.Appearance.ButtonSize)
	}
	if res.Config.DragThreshold != 5 {
		t.Errorf("drag_threshold = %d, want 5", res.Config.DragThreshold)
	}
	if len(res.Files) != 0 {
		t.Errorf("Files = %v, want empty", res.Files)
	}
}

func TestLoadFromPathOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.yaml", `
commands:
  play: "playerctl play"
  stop: "playerctl stop"
appearance:
  button_size: 48
  opacity: 0.75
drag_threshold: 8
voices: [alice, bob]
speeds: ["1.0", "1.5"]
`)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	cfg := res.Config
	if cmd, ok := cfg.Command("play"); !ok || cmd != "playerctl play" {
		t.Errorf("Command(play) = %q, %v", cmd, ok)
	}
	if cfg.Appearance.ButtonSize != 48 {
		t.Errorf("button_size = %d, want 48", cfg.Appearance.ButtonSize)
	}
	if cfg.Appearance.Opacity != 0.75 {
		t.Errorf("opacity = %v, want 0.75", cfg.Appearance.Opacity)
	}
	// Untouched fields keep their defaults.
	if !cfg.Appearance.StayOnTop {
		t.Error("stay_on_top should default to true")
	}
	if cfg.DragThreshold != 8 {
		t.Errorf("drag_threshold = %d, want 8", cfg.DragThreshold)
	}
	if !cfg.HasVoice("bob") || cfg.HasVoice("carol") {
		t.Error("voices not applied")
	}
	if !cfg.HasSpeed("1.5") {
		t.Error("speeds not applied")
	}
}

func TestLoadFromPathUnknownFieldRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.yaml", "buton_size: 40\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadFromPathInclude(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", `
commands:
  play: "mpc play"
  pause: "mpc pause"
appearance:
  button_size: 32
`)
	path := writeConfig(t, dir, "config.yaml", `
include: base.yaml
commands:
  pause: "mpc toggle"
`)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	cfg := res.Config
	if cmd, _ := cfg.Command("play"); cmd != "mpc play" {
		t.Errorf("included play = %q", cmd)
	}
	// The including file wins.
	if cmd, _ := cfg.Command("pause"); cmd != "mpc toggle" {
		t.Errorf("pause = %q, want override", cmd)
	}
	if cfg.Appearance.ButtonSize != 32 {
		t.Errorf("button_size = %d, want 32 from include", cfg.Appearance.ButtonSize)
	}
	if len(res.Files) != 2 {
		t.Errorf("Files = %v, want include then main", res.Files)
	}
}

func TestLoadFromPathIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.yaml", "include: b.yaml\n")
	path := writeConfig(t, dir, "b.yaml", "include: a.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestValidationErrorCarriesSource(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.yaml", "drag_threshold: 0\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type %T, want *ValidationError", err)
	}
	if verr.Path != "drag_threshold" {
		t.Errorf("Path = %q", verr.Path)
	}
	if verr.Source.Kind != SourceFile || verr.Source.Line != 1 {
		t.Errorf("Source = %+v, want file line 1", verr.Source)
	}
	if !strings.Contains(err.Error(), "drag_threshold") {
		t.Errorf("message %q should name the field", err.Error())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPath string
	}{
		{"defaults valid", func(c *Config) {}, ""},
		{"nil commands", func(c *Config) { c.Commands = nil }, "commands"},
		{"tiny buttons", func(c *Config) { c.Appearance.ButtonSize = 4 }, "appearance.button_size"},
		{"opacity range", func(c *Config) { c.Appearance.Opacity = 1.5 }, "appearance.opacity"},
		{"negative origin", func(c *Config) { c.Appearance.InitialX = -1 }, "appearance"},
		{"zero threshold", func(c *Config) { c.DragThreshold = 0 }, "drag_threshold"},
		{"negative spacing", func(c *Config) { c.CommandSpacingMS = -10 }, "command_spacing_ms"},
		{"blank voice", func(c *Config) { c.Voices = []string{"alice", " "} }, "voices[1]"},
		{"missing toggle hotkey", func(c *Config) { c.ToggleHotkey = "" }, "toggle_hotkey"},
		{"bad status listen", func(c *Config) { c.StatusListen = "7465" }, "status_listen"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantPath == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("Validate() = %v (%T), want *ValidationError", err, err)
			}
			if verr.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", verr.Path, tt.wantPath)
			}
		})
	}
}

func TestCommandEmptyEntries(t *testing.T) {
	cfg := DefaultConfig()
	if _, ok := cfg.Command("play"); ok {
		t.Error("default empty play command should report ok=false")
	}
	if _, ok := cfg.Command("no_such_key"); ok {
		t.Error("missing key should report ok=false")
	}
}

func TestVoiceAndSpeedCommandKeys(t *testing.T) {
	if got := VoiceCommandKey("alice"); got != "voice.alice" {
		t.Errorf("VoiceCommandKey = %q", got)
	}
	if got := SpeedCommandKey("1.5"); got != "speed.1.5" {
		t.Errorf("SpeedCommandKey = %q", got)
	}
}
