// Package tui implements an interactive terminal control panel for the
// floatbar daemon. It talks to the daemon over the IPC socket and mirrors
// its status; the daemon keeps running when the TUI exits.
package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/1broseidon/floatbar/internal/config"
	"github.com/1broseidon/floatbar/internal/ipc"
	"github.com/1broseidon/floatbar/internal/toolbar"
	"golang.org/x/term"
)

// TUI represents the terminal user interface state.
type TUI struct {
	configPath string
	result     *config.LoadResult
	client     *ipc.Client

	// UI state
	buttons       []toolbar.Button
	selectedIndex int
	status        *ipc.StatusData
	lastError     string
	fatalErr      error

	// Terminal state
	oldState *term.State
	width    int
	height   int
}

// New creates a new TUI instance.
func New(configPath string) *TUI {
	return &TUI{
		configPath: configPath,
		client:     ipc.NewClient(),
		buttons:    toolbar.TransportButtons(),
	}
}

// Run starts the TUI main loop.
func (t *TUI) Run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	// Enter raw mode
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	t.oldState = oldState
	defer t.restore()

	// Get terminal size
	t.updateSize()

	// Load config and probe the daemon (both non-fatal; errors render inline)
	_ = t.loadConfig()
	t.refreshStatus()

	// Initial render
	t.render()

	// Main event loop
	buf := make([]byte, 32)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return err
		}

		if t.handleInput(buf[:n]) {
			break
		}

		t.render()
	}

	if t.fatalErr != nil {
		return t.fatalErr
	}
	return nil
}

func (t *TUI) restore() {
	if t.oldState != nil {
		term.Restore(int(os.Stdin.Fd()), t.oldState)
	}
	// Clear screen and show cursor on exit
	fmt.Print("\x1b[0m")   // reset
	fmt.Print("\x1b[?25h") // show cursor
	fmt.Print("\x1b[2J")   // clear screen
	fmt.Print("\x1b[H")    // home cursor
}

func (t *TUI) updateSize() {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		t.width = 80
		t.height = 24
		return
	}
	t.width = w
	t.height = h
}

func (t *TUI) loadConfig() error {
	var res *config.LoadResult
	var err error

	if t.configPath == "" {
		res, err = config.LoadWithSources()
	} else {
		res, err = config.LoadFromPath(t.configPath)
	}

	if err != nil {
		t.lastError = err.Error()
		// Keep old config if we have one
		if t.result != nil {
			return nil
		}
		return err
	}

	t.result = res
	t.lastError = ""
	return nil
}

func (t *TUI) refreshStatus() {
	status, err := t.client.GetStatus()
	if err != nil {
		t.status = nil
		return
	}
	t.status = status
}

func (t *TUI) handleInput(input []byte) bool {
	if len(input) == 0 {
		return false
	}

	for len(input) > 0 {
		// Check for escape sequences
		if len(input) >= 3 && input[0] == 0x1b && input[1] == '[' {
			switch input[2] {
			case 'A': // Up arrow
				t.moveSelection(-1)
			case 'B': // Down arrow
				t.moveSelection(1)
			}
			input = input[3:]
			continue
		}

		// Single character commands
		switch input[0] {
		case 'q', 0x1b: // q or Escape
			return true
		case 0x03: // Ctrl+C
			return true
		case 'j': // vim down
			t.moveSelection(1)
		case 'k': // vim up
			t.moveSelection(-1)
		case '\r', ' ': // Enter or space
			t.pressSelected()
		case 'v':
			t.cycleVoice(1)
		case 'V':
			t.cycleVoice(-1)
		case 's':
			t.cycleSpeed(1)
		case 'S':
			t.cycleSpeed(-1)
		case 't': // show/hide the toolbar window
			t.runAction(t.client.Toggle)
		case 'p': // expand/collapse the options panel
			t.runAction(t.client.TogglePanel)
		case 'e': // edit
			if err := t.editConfig(); err != nil {
				t.fatalErr = err
				return true
			}
		case 'r': // reload config here and in the daemon
			_ = t.loadConfig()
			t.runAction(t.client.Reload)
		}

		input = input[1:]
	}

	return false
}

func (t *TUI) moveSelection(delta int) {
	if len(t.buttons) == 0 {
		return
	}
	t.selectedIndex += delta
	if t.selectedIndex < 0 {
		t.selectedIndex = len(t.buttons) - 1
	} else if t.selectedIndex >= len(t.buttons) {
		t.selectedIndex = 0
	}
}

func (t *TUI) pressSelected() {
	if len(t.buttons) == 0 {
		return
	}
	key := t.buttons[t.selectedIndex].Key

	status, err := t.client.Press(key)
	if err != nil {
		t.lastError = err.Error()
		t.status = nil
		return
	}
	t.status = status
	t.lastError = ""
}

// runAction invokes a daemon command and refreshes the status snapshot.
func (t *TUI) runAction(fn func() error) {
	if err := fn(); err != nil {
		t.lastError = err.Error()
		t.status = nil
		return
	}
	t.lastError = ""
	t.refreshStatus()
}

func (t *TUI) cycleVoice(delta int) {
	next, ok := t.cycleOption(t.voices(), t.currentVoice(), delta)
	if !ok {
		return
	}
	t.runAction(func() error { return t.client.SetVoice(next) })
}

func (t *TUI) cycleSpeed(delta int) {
	next, ok := t.cycleOption(t.speeds(), t.currentSpeed(), delta)
	if !ok {
		return
	}
	t.runAction(func() error { return t.client.SetSpeed(next) })
}

// cycleOption steps through options from current, wrapping at the ends.
func (t *TUI) cycleOption(options []string, current string, delta int) (string, bool) {
	if len(options) == 0 {
		return "", false
	}
	idx := 0
	for i, opt := range options {
		if opt == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(options)) % len(options)
	return options[idx], true
}

func (t *TUI) voices() []string {
	if t.result == nil {
		return nil
	}
	return t.result.Config.Voices
}

func (t *TUI) speeds() []string {
	if t.result == nil {
		return nil
	}
	return t.result.Config.Speeds
}

func (t *TUI) currentVoice() string {
	if t.status == nil {
		return ""
	}
	return t.status.Voice
}

func (t *TUI) currentSpeed() string {
	if t.status == nil {
		return ""
	}
	return t.status.Speed
}

func (t *TUI) editConfig() (err error) {
	// Restore terminal state before launching editor
	t.restore()

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}

	configPath := t.configPath
	if configPath == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			t.lastError = err.Error()
			return t.reenterRawMode()
		}
		configPath = path
	}

	editorParts := strings.Fields(editor)
	if len(editorParts) == 0 {
		editorParts = []string{"vi"}
	}

	cmd := exec.Command(editorParts[0], append(editorParts[1:], configPath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		t.lastError = fmt.Sprintf("editor failed: %v", err)
	}

	if err := t.reenterRawMode(); err != nil {
		return err
	}

	// Reload config after editing and push it to the daemon
	_ = t.loadConfig()
	if t.lastError == "" {
		t.runAction(t.client.Reload)
	}
	t.updateSize()

	return nil
}

func (t *TUI) reenterRawMode() error {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to re-enter raw mode: %w", err)
	}
	t.oldState = oldState
	return nil
}

// commandFor resolves the configured command line for a button key.
func (t *TUI) commandFor(key string) (string, bool) {
	if t.result == nil {
		return "", false
	}
	return t.result.Config.Command(key)
}
