package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Toolbar colors
const (
	ColorBarBg      = 0x1f2933 // dark strip background
	ColorButtonBg   = 0x323f4b // button face
	ColorButtonHot  = 0x3e4c59 // hovered button face
	ColorButtonText = 0xf5f7fa // label text
	ColorDivider    = 0x52606d // separator between strip and panel
)

const opacityAtomName = "_NET_WM_WINDOW_OPACITY"

// ToolbarWindow is the frameless always-on-top toolbar surface. The window is
// override-redirect, so the window manager never decorates, reparents, or
// repositions it; all geometry is tracked here.
type ToolbarWindow struct {
	xu  *xgbutil.XUtil
	win xproto.Window
	gc  xproto.Gcontext
	fnt xproto.Font

	x, y          int
	width, height int
	mapped        bool
	grabbed       bool
}

// NewToolbarWindow creates and maps the toolbar window at the given geometry.
// Opacity is applied via _NET_WM_WINDOW_OPACITY when a compositor honors it.
func NewToolbarWindow(xu *xgbutil.XUtil, x, y, width, height int, opacity float64) (*ToolbarWindow, error) {
	conn := xu.Conn()
	screen := xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		xu.RootWin(),
		int16(x), int16(y),
		uint16(width), uint16(height),
		0, // border_width
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		// Value list order follows the bit positions of the mask (low -> high).
		[]uint32{
			ColorBarBg, // back_pixel
			1,          // override_redirect
			uint32(xproto.EventMaskExposure |
				xproto.EventMaskButtonPress |
				xproto.EventMaskButtonRelease |
				xproto.EventMaskPointerMotion |
				xproto.EventMaskLeaveWindow),
		},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("failed to create toolbar window: %w", err)
	}

	tw := &ToolbarWindow{
		xu:     xu,
		win:    wid,
		x:      x,
		y:      y,
		width:  width,
		height: height,
	}

	if err := tw.createDrawResources(); err != nil {
		xproto.DestroyWindow(conn, wid)
		return nil, err
	}

	if opacity < 1.0 {
		tw.setOpacity(opacity)
	}

	tw.Show()
	return tw, nil
}

func (t *ToolbarWindow) createDrawResources() error {
	conn := t.xu.Conn()

	font, err := xproto.NewFontId(conn)
	if err != nil {
		return err
	}
	fontNames := []string{"fixed", "9x15", "8x13", "6x13"}
	opened := false
	for _, fontName := range fontNames {
		if err := xproto.OpenFontChecked(conn, font, uint16(len(fontName)), fontName).Check(); err == nil {
			opened = true
			break
		}
	}
	if !opened {
		return fmt.Errorf("no usable core font found")
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		xproto.CloseFont(conn, font)
		return err
	}
	err = xproto.CreateGCChecked(
		conn,
		gc,
		xproto.Drawable(t.win),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{
			ColorButtonText, // foreground
			ColorBarBg,      // background
			uint32(font),    // font
			0,               // graphics_exposures=false
		},
	).Check()
	if err != nil {
		xproto.FreeGC(conn, gc)
		xproto.CloseFont(conn, font)
		return err
	}

	t.gc = gc
	t.fnt = font
	return nil
}

func (t *ToolbarWindow) setOpacity(opacity float64) {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	val := uint(opacity * 0xffffffff)
	// Best-effort; without a compositor the property is ignored.
	_ = xprop.ChangeProp32(t.xu, t.win, opacityAtomName, "CARDINAL", val)
}

// Window returns the X window ID for event handler registration.
func (t *ToolbarWindow) Window() xproto.Window {
	return t.win
}

// Geometry returns the tracked position and size.
func (t *ToolbarWindow) Geometry() (x, y, width, height int) {
	return t.x, t.y, t.width, t.height
}

// MoveTo repositions the window.
func (t *ToolbarWindow) MoveTo(x, y int) {
	t.x = x
	t.y = y
	xproto.ConfigureWindow(
		t.xu.Conn(),
		t.win,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(x), uint32(y)},
	)
}

// Resize changes the window width, keeping position and height.
func (t *ToolbarWindow) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	t.width = width
	t.height = height
	xproto.ConfigureWindow(
		t.xu.Conn(),
		t.win,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(width), uint32(height)},
	)
}

// Raise restacks the window above all siblings.
func (t *ToolbarWindow) Raise() {
	xproto.ConfigureWindow(
		t.xu.Conn(),
		t.win,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	)
}

// Show maps and raises the window.
func (t *ToolbarWindow) Show() {
	xproto.MapWindow(t.xu.Conn(), t.win)
	t.Raise()
	t.mapped = true
}

// Hide unmaps the window without destroying it.
func (t *ToolbarWindow) Hide() {
	if !t.mapped {
		return
	}
	xproto.UnmapWindow(t.xu.Conn(), t.win)
	t.mapped = false
}

// Visible reports whether the window is currently mapped.
func (t *ToolbarWindow) Visible() bool {
	return t.mapped
}

// GrabPointer takes an active pointer grab so motion and release events keep
// arriving while the pointer is outside the window during a drag.
func (t *ToolbarWindow) GrabPointer() error {
	if t.grabbed {
		return nil
	}
	reply, err := xproto.GrabPointer(
		t.xu.Conn(),
		true, // owner_events
		t.win,
		uint16(xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion),
		xproto.GrabModeAsync,
		xproto.GrabModeAsync,
		xproto.WindowNone,
		xproto.CursorNone,
		xproto.TimeCurrentTime,
	).Reply()
	if err != nil {
		return fmt.Errorf("failed to grab pointer: %w", err)
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("pointer grab refused (status %d)", reply.Status)
	}
	t.grabbed = true
	return nil
}

// UngrabPointer releases an active pointer grab.
func (t *ToolbarWindow) UngrabPointer() {
	if !t.grabbed {
		return
	}
	xproto.UngrabPointer(t.xu.Conn(), xproto.TimeCurrentTime)
	t.grabbed = false
}

// Clear repaints the whole window with the strip background.
func (t *ToolbarWindow) Clear() {
	xproto.ClearArea(t.xu.Conn(), false, t.win, 0, 0, 0, 0)
}

// FillRect paints a solid rectangle.
func (t *ToolbarWindow) FillRect(x, y, width, height int, color uint32) {
	conn := t.xu.Conn()
	xproto.ChangeGC(conn, t.gc, xproto.GcForeground, []uint32{color})
	xproto.PolyFillRectangle(conn, xproto.Drawable(t.win), t.gc, []xproto.Rectangle{{
		X:      int16(x),
		Y:      int16(y),
		Width:  uint16(width),
		Height: uint16(height),
	}})
}

// DrawText renders a single line with the core font. x,y is the baseline
// origin. Core fonts are latin-only; labels must be ASCII.
func (t *ToolbarWindow) DrawText(x, y int, text string, fg, bg uint32) {
	if text == "" {
		return
	}
	if len(text) > 255 {
		text = text[:255]
	}
	conn := t.xu.Conn()
	xproto.ChangeGC(conn, t.gc, xproto.GcForeground|xproto.GcBackground, []uint32{fg, bg})
	xproto.ImageText8(
		conn,
		byte(len(text)),
		xproto.Drawable(t.win),
		t.gc,
		int16(x),
		int16(y),
		text,
	)
}

// Destroy releases the window and its drawing resources.
func (t *ToolbarWindow) Destroy() {
	conn := t.xu.Conn()
	t.UngrabPointer()
	if t.gc != 0 {
		xproto.FreeGC(conn, t.gc)
		t.gc = 0
	}
	if t.fnt != 0 {
		xproto.CloseFont(conn, t.fnt)
		t.fnt = 0
	}
	if t.win != 0 {
		xproto.DestroyWindow(conn, t.win)
		t.win = 0
	}
	t.mapped = false
}
