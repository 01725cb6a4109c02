package toolbar

import (
	"testing"
	"time"

	"github.com/1broseidon/floatbar/internal/config"
	"github.com/1broseidon/floatbar/internal/gesture"
	"github.com/1broseidon/floatbar/internal/playback"
)

// fakeSurface implements platform.Toolbar without an X connection.
type fakeSurface struct {
	x, y          int
	width, height int
	visible       bool
	grabs         int
	ungrabs       int
	destroyed     bool
}

func (f *fakeSurface) Geometry() (int, int, int, int) { return f.x, f.y, f.width, f.height }
func (f *fakeSurface) MoveTo(x, y int)                { f.x, f.y = x, y }
func (f *fakeSurface) Resize(w, h int)                { f.width, f.height = w, h }
func (f *fakeSurface) Raise()                         {}
func (f *fakeSurface) Show()                          { f.visible = true }
func (f *fakeSurface) Hide()                          { f.visible = false }
func (f *fakeSurface) Visible() bool                  { return f.visible }
func (f *fakeSurface) GrabPointer() error             { f.grabs++; return nil }
func (f *fakeSurface) UngrabPointer()                 { f.ungrabs++ }
func (f *fakeSurface) Clear()                         {}
func (f *fakeSurface) FillRect(x, y, w, h int, color uint32)               {}
func (f *fakeSurface) DrawText(x, y int, text string, fg, bg uint32)       {}
func (f *fakeSurface) Destroy()                       { f.destroyed = true }

type fakeLauncher struct {
	launched []string
}

func (f *fakeLauncher) Launch(cmdline string) { f.launched = append(f.launched, cmdline) }

type manualClock struct {
	pending []func()
}

func (c *manualClock) afterFunc(d time.Duration, f func()) *time.Timer {
	c.pending = append(c.pending, f)
	return nil
}

func (c *manualClock) drain(max int) {
	for i := 0; i < max && len(c.pending) > 0; i++ {
		f := c.pending[0]
		c.pending = c.pending[1:]
		f()
	}
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Commands["play"] = "player play"
	cfg.Commands["pause"] = "player pause"
	cfg.Commands["resume"] = "player resume"
	cfg.Commands["stop"] = "player stop"
	cfg.Commands["voice.alice"] = "player voice alice"
	cfg.Voices = []string{"alice", "bob"}
	cfg.Speeds = []string{"1.0", "1.5"}
	return cfg
}

func newTestController(t *testing.T) (*Controller, *fakeSurface, *fakeLauncher, *manualClock) {
	t.Helper()
	cfg := testConfig()
	w, h := CollapsedSize(cfg)
	surface := &fakeSurface{x: 100, y: 100, width: w, height: h, visible: true}
	launcher := &fakeLauncher{}
	clock := &manualClock{}
	ctrl := New(Options{Config: cfg, Surface: surface, Launcher: launcher})
	ctrl.after = clock.afterFunc
	return ctrl, surface, launcher, clock
}

func clickAt(c *Controller, rootX, rootY int) {
	c.HandleButtonPress(rootX, rootY, gesture.ButtonPrimary)
	c.HandleButtonRelease(rootX, rootY, gesture.ButtonPrimary)
}

func TestClickPlayLaunchesAndTransitions(t *testing.T) {
	ctrl, _, launcher, _ := newTestController(t)

	// Play is the second button: local x 40..79, window at 100,100.
	clickAt(ctrl, 150, 120)

	if len(launcher.launched) != 1 || launcher.launched[0] != "player play" {
		t.Fatalf("launched %v, want [player play]", launcher.launched)
	}
	if ctrl.State() != playback.StatePlaying {
		t.Fatalf("state = %v, want playing", ctrl.State())
	}
}

func TestPauseResumeCycle(t *testing.T) {
	ctrl, _, launcher, _ := newTestController(t)

	ctrl.PressKey(playback.KeyPlay)
	ctrl.PressKey(playback.KeyPause)
	ctrl.PressKey(playback.KeyPause) // toggles back to playing via resume

	want := []string{"player play", "player pause", "player resume"}
	if len(launcher.launched) != len(want) {
		t.Fatalf("launched %v, want %v", launcher.launched, want)
	}
	for i := range want {
		if launcher.launched[i] != want[i] {
			t.Errorf("launch %d = %q, want %q", i, launcher.launched[i], want[i])
		}
	}
	if ctrl.State() != playback.StatePlaying {
		t.Fatalf("state = %v, want playing", ctrl.State())
	}
}

func TestUnconfiguredSeekStillTransitions(t *testing.T) {
	ctrl, _, launcher, _ := newTestController(t)

	ctrl.PressKey(playback.KeyRewind) // no rewind command configured

	if len(launcher.launched) != 0 {
		t.Fatalf("launched %v, want nothing", launcher.launched)
	}
	if ctrl.State() != playback.StatePlaying {
		t.Fatalf("state = %v, want playing despite missing command", ctrl.State())
	}
}

func TestDragSuppressesClick(t *testing.T) {
	ctrl, surface, launcher, _ := newTestController(t)

	ctrl.HandleButtonPress(150, 120, gesture.ButtonPrimary)
	ctrl.HandleMotion(180, 130)
	ctrl.HandleButtonRelease(180, 130, gesture.ButtonPrimary)

	if len(launcher.launched) != 0 {
		t.Fatalf("drag release launched %v", launcher.launched)
	}
	// Window followed the pointer: press offset inside was (50, 20).
	if surface.x != 130 || surface.y != 110 {
		t.Fatalf("window at %d,%d, want 130,110", surface.x, surface.y)
	}
	if surface.grabs != 1 || surface.ungrabs != 1 {
		t.Fatalf("grabs/ungrabs = %d/%d, want 1/1", surface.grabs, surface.ungrabs)
	}
}

func TestClickWithinDeadZoneStillFires(t *testing.T) {
	ctrl, surface, launcher, _ := newTestController(t)

	ctrl.HandleButtonPress(150, 120, gesture.ButtonPrimary)
	ctrl.HandleMotion(152, 121)
	ctrl.HandleButtonRelease(152, 121, gesture.ButtonPrimary)

	if len(launcher.launched) != 1 {
		t.Fatalf("launched %v, want one click", launcher.launched)
	}
	if surface.x != 100 || surface.y != 100 {
		t.Fatal("window moved during a click")
	}
	if surface.grabs != 0 {
		t.Fatal("no grab expected inside the dead zone")
	}
}

func TestRightClickQuits(t *testing.T) {
	quit := 0
	cfg := testConfig()
	w, h := CollapsedSize(cfg)
	surface := &fakeSurface{x: 0, y: 0, width: w, height: h, visible: true}
	ctrl := New(Options{
		Config:   cfg,
		Surface:  surface,
		Launcher: &fakeLauncher{},
		Quit:     func() { quit++ },
	})

	ctrl.HandleButtonRelease(10, 10, gesture.ButtonSecondary)
	if quit != 1 {
		t.Fatalf("quit called %d times, want 1", quit)
	}
}

func TestPanelAnimationReachesTarget(t *testing.T) {
	ctrl, surface, _, clock := newTestController(t)
	collapsed := surface.width

	ctrl.TogglePanel()
	clock.drain(100)

	l := ctrl.layoutLocked()
	if surface.width != l.expandedWidth() {
		t.Fatalf("width = %d, want expanded %d", surface.width, l.expandedWidth())
	}

	ctrl.TogglePanel()
	clock.drain(100)
	if surface.width != collapsed {
		t.Fatalf("width = %d, want collapsed %d", surface.width, collapsed)
	}
}

func TestSelectVoiceLaunchesCommand(t *testing.T) {
	ctrl, _, launcher, _ := newTestController(t)

	if !ctrl.SelectVoice("alice") {
		t.Fatal("SelectVoice(alice) = false")
	}
	if len(launcher.launched) != 1 || launcher.launched[0] != "player voice alice" {
		t.Fatalf("launched %v", launcher.launched)
	}
	if ctrl.SelectVoice("mallory") {
		t.Fatal("unknown voice accepted")
	}
	if got := ctrl.Status().Voice; got != "alice" {
		t.Fatalf("selected voice %q", got)
	}
}

func TestSelectSpeedUpdatesStatus(t *testing.T) {
	ctrl, _, _, _ := newTestController(t)

	if !ctrl.SelectSpeed("1.5") {
		t.Fatal("SelectSpeed(1.5) = false")
	}
	if got := ctrl.Status().Speed; got != "1.5" {
		t.Fatalf("selected speed %q", got)
	}
	if ctrl.SelectSpeed("3.0") {
		t.Fatal("unknown speed accepted")
	}
}

func TestToggleVisible(t *testing.T) {
	ctrl, surface, _, _ := newTestController(t)

	ctrl.ToggleVisible()
	if surface.visible {
		t.Fatal("toolbar still visible after toggle")
	}
	ctrl.ToggleVisible()
	if !surface.visible {
		t.Fatal("toolbar hidden after second toggle")
	}
}

func TestNotifyEvents(t *testing.T) {
	var events []string
	cfg := testConfig()
	w, h := CollapsedSize(cfg)
	surface := &fakeSurface{width: w, height: h, visible: true}
	ctrl := New(Options{
		Config:   cfg,
		Surface:  surface,
		Launcher: &fakeLauncher{},
		Notify:   func(event string, data any) { events = append(events, event) },
	})
	ctrl.after = (&manualClock{}).afterFunc

	ctrl.PressKey(playback.KeyPlay)
	ctrl.PressKey(playback.KeyPlay) // same state, no event
	ctrl.SelectVoice("bob")
	ctrl.SelectSpeed("1.5")
	ctrl.TogglePanel()

	want := []string{"playback_changed", "voice_changed", "speed_changed", "panel_changed"}
	if len(events) != len(want) {
		t.Fatalf("events %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, events[i], want[i])
		}
	}
}

func TestReloadKeepsPosition(t *testing.T) {
	ctrl, surface, _, _ := newTestController(t)
	surface.x, surface.y = 400, 500

	cfg := testConfig()
	cfg.Appearance.ButtonSize = 48
	cfg.Voices = []string{"carol"}
	ctrl.Reload(cfg)

	if surface.x != 400 || surface.y != 500 {
		t.Fatal("reload moved the window")
	}
	if surface.height != 48 {
		t.Fatalf("height = %d, want 48", surface.height)
	}
	// Previously selected voice is gone; selection falls back.
	if got := ctrl.Status().Voice; got != "carol" {
		t.Fatalf("voice after reload = %q, want carol", got)
	}
}
