// Package toolbar drives the floating media toolbar: button layout, drag
// handling, playback routing, and the options panel.
package toolbar

import (
	"log"
	"sync"
	"time"

	"github.com/1broseidon/floatbar/internal/command"
	"github.com/1broseidon/floatbar/internal/config"
	"github.com/1broseidon/floatbar/internal/gesture"
	"github.com/1broseidon/floatbar/internal/platform"
	"github.com/1broseidon/floatbar/internal/playback"
	"github.com/1broseidon/floatbar/internal/x11"
)

const (
	panelFrameInterval = 16 * time.Millisecond
	panelStepPixels    = 24
	textCharWidth      = 7
)

// Status is a snapshot of the controller state for IPC and the state feed.
type Status struct {
	State    playback.State
	X        int
	Y        int
	Visible  bool
	Expanded bool
	Voice    string
	Speed    string
	Started  time.Time
}

// Controller owns the toolbar surface and all UI state. X event handlers,
// hotkeys and IPC all funnel through the mutex; the underlying surface is
// only touched while it is held.
type Controller struct {
	mu sync.Mutex

	cfg      *config.Config
	surface  platform.Toolbar
	detector *gesture.Detector
	queue    *command.Queue
	launcher command.Launcher

	state playback.State
	voice string
	speed string

	expanded  bool
	animating bool

	hover   int // index into cells(), -1 when none
	started time.Time

	// after is time.AfterFunc, swappable in tests.
	after  func(d time.Duration, f func()) *time.Timer
	quit   func()
	notify func(event string, data any)
}

// Options carries the controller's collaborators.
type Options struct {
	Config   *config.Config
	Surface  platform.Toolbar
	Launcher command.Launcher
	Quit     func()
	// Notify is invoked after state-changing events (playback_changed,
	// voice_changed, speed_changed, panel_changed). Optional.
	Notify func(event string, data any)
}

// New builds a controller over an already-created toolbar surface.
func New(opts Options) *Controller {
	c := &Controller{
		cfg:      opts.Config,
		surface:  opts.Surface,
		launcher: opts.Launcher,
		state:    playback.StateIdle,
		hover:    -1,
		started:  time.Now(),
		after:    time.AfterFunc,
		quit:     opts.Quit,
		notify:   opts.Notify,
	}
	if c.quit == nil {
		c.quit = func() {}
	}
	if c.notify == nil {
		c.notify = func(string, any) {}
	}
	c.detector = gesture.NewDetector(&dragSurface{c: c}, opts.Config.DragThreshold)
	c.queue = command.NewQueue(opts.Launcher, time.Duration(opts.Config.CommandSpacingMS)*time.Millisecond)
	if len(opts.Config.Voices) > 0 {
		c.voice = opts.Config.Voices[0]
	}
	if len(opts.Config.Speeds) > 0 {
		c.speed = opts.Config.Speeds[0]
	}
	c.mu.Lock()
	c.redrawLocked()
	c.mu.Unlock()
	return c
}

// CollapsedSize returns the initial window size for a config.
func CollapsedSize(cfg *config.Config) (width, height int) {
	l := layout{size: cfg.Appearance.ButtonSize, buttons: TransportButtons()}
	return l.collapsedWidth(), cfg.Appearance.ButtonSize
}

func (c *Controller) layoutLocked() layout {
	return layout{
		size:     c.cfg.Appearance.ButtonSize,
		buttons:  TransportButtons(),
		voices:   c.cfg.Voices,
		speeds:   c.cfg.Speeds,
		expanded: c.expanded,
	}
}

// dragSurface adapts the controller to the gesture.Surface contract. All
// methods run with the controller mutex already held.
type dragSurface struct {
	c *Controller
}

func (s *dragSurface) Position() gesture.Point {
	x, y, _, _ := s.c.surface.Geometry()
	return gesture.Point{X: x, Y: y}
}

func (s *dragSurface) MoveTo(p gesture.Point) {
	s.c.surface.MoveTo(p.X, p.Y)
}

func (s *dragSurface) PressDefault(p gesture.Point) {
	// Presses only update hover highlight; actions fire on release.
	s.c.updateHoverLocked(p)
}

func (s *dragSurface) MoveDefault(p gesture.Point) {
	s.c.updateHoverLocked(p)
}

func (s *dragSurface) ReleaseDefault(p gesture.Point) {
	s.c.clickLocked(p)
}

func (c *Controller) localPointLocked(p gesture.Point) (int, int) {
	x, y, _, _ := c.surface.Geometry()
	return p.X - x, p.Y - y
}

func (c *Controller) updateHoverLocked(p gesture.Point) {
	lx, ly := c.localPointLocked(p)
	hover := -1
	l := c.layoutLocked()
	if hit, ok := l.hitTest(lx, ly); ok {
		for i, cl := range l.cells() {
			if cl == hit {
				hover = i
				break
			}
		}
	}
	if hover != c.hover {
		c.hover = hover
		c.redrawLocked()
	}
}

// HandleButtonPress feeds a pointer button press in root coordinates.
func (c *Controller) HandleButtonPress(rootX, rootY int, btn gesture.Button) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detector.Press(gesture.Point{X: rootX, Y: rootY}, btn)
}

// HandleMotion feeds pointer motion in root coordinates.
func (c *Controller) HandleMotion(rootX, rootY int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	wasDragging := c.detector.Dragging()
	c.detector.Move(gesture.Point{X: rootX, Y: rootY})
	if !wasDragging && c.detector.Dragging() {
		// The session just armed; hold the pointer until release so the drag
		// keeps tracking outside the window.
		if err := c.surface.GrabPointer(); err != nil {
			log.Printf("toolbar: pointer grab failed: %v", err)
		}
	}
}

// HandleButtonRelease feeds a pointer button release in root coordinates.
// A secondary-button release on the strip quits the daemon.
func (c *Controller) HandleButtonRelease(rootX, rootY int, btn gesture.Button) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if btn == gesture.ButtonSecondary {
		log.Printf("toolbar: quit requested")
		c.quit()
		return
	}
	wasDragging := c.detector.Dragging()
	c.detector.Release(gesture.Point{X: rootX, Y: rootY}, btn)
	if wasDragging {
		c.surface.UngrabPointer()
	}
}

// HandleLeave clears hover highlight when the pointer leaves the window.
func (c *Controller) HandleLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hover != -1 {
		c.hover = -1
		c.redrawLocked()
	}
}

// HandleExpose repaints after the server discarded window contents.
func (c *Controller) HandleExpose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.redrawLocked()
}

func (c *Controller) clickLocked(p gesture.Point) {
	lx, ly := c.localPointLocked(p)
	hit, ok := c.layoutLocked().hitTest(lx, ly)
	if !ok {
		return
	}
	switch hit.kind {
	case cellTransport:
		c.pressKeyLocked(TransportButtons()[hit.index].Key)
	case cellToggle:
		c.togglePanelLocked()
	case cellVoice:
		c.selectVoiceLocked(c.cfg.Voices[hit.index])
	case cellSpeed:
		c.selectSpeedLocked(c.cfg.Speeds[hit.index])
	}
}

// PressKey routes a button key as if it had been clicked. Used by IPC.
func (c *Controller) PressKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pressKeyLocked(key)
}

func (c *Controller) pressKeyLocked(key string) {
	route := playback.RouteButton(key, c.state)
	if cmdline, ok := c.cfg.Command(route.CommandKey); ok {
		c.launcher.Launch(cmdline)
	} else {
		log.Printf("toolbar: no command configured for %q", route.CommandKey)
	}
	if route.Next != c.state {
		c.state = route.Next
		c.redrawLocked()
		c.notify("playback_changed", c.statusLocked())
	}
}

// TogglePanel expands or collapses the options panel.
func (c *Controller) TogglePanel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.togglePanelLocked()
}

func (c *Controller) togglePanelLocked() {
	c.expanded = !c.expanded
	c.hover = -1
	c.notify("panel_changed", c.statusLocked())
	if c.animating {
		return
	}
	c.animating = true
	c.after(panelFrameInterval, c.stepPanel)
}

// stepPanel advances the expand/collapse animation by one frame.
func (c *Controller) stepPanel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	l := c.layoutLocked()
	target := l.width()
	_, _, width, _ := c.surface.Geometry()
	if width == target {
		c.animating = false
		c.redrawLocked()
		return
	}

	step := panelStepPixels
	if width < target {
		width += step
		if width > target {
			width = target
		}
	} else {
		width -= step
		if width < target {
			width = target
		}
	}
	c.surface.Resize(width, l.size)
	c.redrawLocked()
	c.after(panelFrameInterval, c.stepPanel)
}

// SelectVoice switches the active voice and launches its command.
func (c *Controller) SelectVoice(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cfg.HasVoice(name) {
		return false
	}
	c.selectVoiceLocked(name)
	return true
}

func (c *Controller) selectVoiceLocked(name string) {
	c.voice = name
	c.submitConfiguredLocked(config.VoiceCommandKey(name))
	c.redrawLocked()
	c.notify("voice_changed", c.statusLocked())
}

// SelectSpeed switches the active speed and launches its command.
func (c *Controller) SelectSpeed(value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cfg.HasSpeed(value) {
		return false
	}
	c.selectSpeedLocked(value)
	return true
}

func (c *Controller) selectSpeedLocked(value string) {
	c.speed = value
	c.submitConfiguredLocked(config.SpeedCommandKey(value))
	c.redrawLocked()
	c.notify("speed_changed", c.statusLocked())
}

// ApplyCurrent re-launches the commands for the selected voice and speed,
// spaced out through the queue.
func (c *Controller) ApplyCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.voice != "" {
		c.submitConfiguredLocked(config.VoiceCommandKey(c.voice))
	}
	if c.speed != "" {
		c.submitConfiguredLocked(config.SpeedCommandKey(c.speed))
	}
}

func (c *Controller) submitConfiguredLocked(key string) {
	if cmdline, ok := c.cfg.Command(key); ok {
		c.queue.Submit(cmdline)
	} else {
		log.Printf("toolbar: no command configured for %q", key)
	}
}

// ToggleVisible shows or hides the whole toolbar.
func (c *Controller) ToggleVisible() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface.Visible() {
		c.surface.Hide()
	} else {
		c.surface.Show()
		c.redrawLocked()
	}
}

// Reload swaps in a fresh config. Geometry fields apply immediately; the
// window position is kept so a reload does not teleport the toolbar.
func (c *Controller) Reload(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
	c.detector = gesture.NewDetector(&dragSurface{c: c}, cfg.DragThreshold)
	c.queue = command.NewQueue(c.launcher, time.Duration(cfg.CommandSpacingMS)*time.Millisecond)
	if c.voice != "" && !cfg.HasVoice(c.voice) {
		c.voice = ""
		if len(cfg.Voices) > 0 {
			c.voice = cfg.Voices[0]
		}
	}
	if c.speed != "" && !cfg.HasSpeed(c.speed) {
		c.speed = ""
		if len(cfg.Speeds) > 0 {
			c.speed = cfg.Speeds[0]
		}
	}
	l := c.layoutLocked()
	c.surface.Resize(l.width(), l.size)
	c.redrawLocked()
}

// Status returns a snapshot of the controller state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *Controller) statusLocked() Status {
	x, y, _, _ := c.surface.Geometry()
	return Status{
		State:    c.state,
		X:        x,
		Y:        y,
		Visible:  c.surface.Visible(),
		Expanded: c.expanded,
		Voice:    c.voice,
		Speed:    c.speed,
		Started:  c.started,
	}
}

// State returns the assumed playback state.
func (c *Controller) State() playback.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Destroy tears down the surface.
func (c *Controller) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surface.Destroy()
}

func (c *Controller) redrawLocked() {
	l := c.layoutLocked()
	c.surface.Clear()
	for i, cl := range l.cells() {
		face := uint32(x11.ColorButtonBg)
		if i == c.hover {
			face = x11.ColorButtonHot
		}
		c.surface.FillRect(cl.x+1, 1, cl.width-2, l.size-2, face)
		label := c.cellLabelLocked(cl)
		if label == "" {
			continue
		}
		tx := cl.x + (cl.width-len(label)*textCharWidth)/2
		if tx < cl.x+2 {
			tx = cl.x + 2
		}
		ty := l.size/2 + 4
		c.surface.DrawText(tx, ty, label, x11.ColorButtonText, face)
	}
}

func (c *Controller) cellLabelLocked(cl cell) string {
	switch cl.kind {
	case cellTransport:
		b := TransportButtons()[cl.index]
		// The play slot doubles as a resume affordance while paused.
		if b.Key == playback.KeyPlay && c.state == playback.StatePaused {
			return ">>"
		}
		return b.Label
	case cellToggle:
		if c.expanded {
			return "<"
		}
		return "+"
	case cellVoice:
		name := c.cfg.Voices[cl.index]
		if name == c.voice {
			return "*" + name
		}
		return name
	case cellSpeed:
		value := c.cfg.Speeds[cl.index]
		if value == c.speed {
			return "*" + value
		}
		return value
	default:
		return ""
	}
}
