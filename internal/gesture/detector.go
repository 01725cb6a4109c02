// Package gesture distinguishes drags from clicks on a movable surface.
//
// A Detector wraps a Surface and watches the primary-button press/move/release
// stream. Movement within a small dead zone is still a click; once the pointer
// travels past the threshold the session arms, the surface follows the
// pointer, and the eventual release is swallowed so no click fires.
package gesture

// Point is a position in root-window coordinates.
type Point struct {
	X int
	Y int
}

// Sub returns p - q componentwise.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q componentwise.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Button identifies a pointer button.
type Button uint8

const (
	ButtonPrimary   Button = 1
	ButtonMiddle    Button = 2
	ButtonSecondary Button = 3
)

// Surface is the movable thing a Detector drives. Position and MoveTo deal in
// the surface's top-left corner. The Default methods are the surface's own
// press/move/release behavior, invoked whenever the detector does not consume
// an event.
type Surface interface {
	Position() Point
	MoveTo(p Point)

	PressDefault(p Point)
	MoveDefault(p Point)
	ReleaseDefault(p Point)
}

// DefaultThreshold is the dead-zone radius in Manhattan distance. Pointer
// travel must exceed it before a press turns into a drag.
const DefaultThreshold = 5

// Detector tracks at most one drag session at a time.
type Detector struct {
	surface   Surface
	threshold int

	// session state; zero value means no session
	active       bool
	armed        bool
	pressPoint   Point
	originOffset Point
}

// NewDetector wraps surface with the given dead-zone threshold. A threshold
// of zero or less falls back to DefaultThreshold.
func NewDetector(surface Surface, threshold int) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Detector{surface: surface, threshold: threshold}
}

// Dragging reports whether an armed session is in progress. Callers use this
// to decide when a pointer grab is worth holding.
func (d *Detector) Dragging() bool {
	return d.active && d.armed
}

// Press feeds a button-press event at pointer position p. Only the primary
// button starts a session; a second press without an intervening release
// restarts the session at the new position. The surface's own press behavior
// always runs afterwards.
func (d *Detector) Press(p Point, btn Button) {
	if btn == ButtonPrimary {
		d.active = true
		d.armed = false
		d.pressPoint = p
		d.originOffset = p.Sub(d.surface.Position())
	}
	d.surface.PressDefault(p)
}

// Move feeds a pointer-motion event and reports whether it was consumed.
// Without a session, and within the dead zone, motion passes through to the
// surface. Once past the threshold the session arms for good and every
// subsequent move repositions the surface.
func (d *Detector) Move(p Point) bool {
	if !d.active {
		d.surface.MoveDefault(p)
		return false
	}
	if !d.armed && manhattan(p, d.pressPoint) > d.threshold {
		d.armed = true
	}
	if d.armed {
		d.surface.MoveTo(p.Sub(d.originOffset))
		return true
	}
	d.surface.MoveDefault(p)
	return false
}

// Release feeds a button-release event. A primary release ends the session;
// the surface's release behavior (the click) runs only when the session never
// armed. Non-primary releases pass straight through.
func (d *Detector) Release(p Point, btn Button) {
	if btn != ButtonPrimary {
		d.surface.ReleaseDefault(p)
		return
	}
	wasDragging := d.active && d.armed
	d.active = false
	d.armed = false
	if !wasDragging {
		d.surface.ReleaseDefault(p)
	}
}
