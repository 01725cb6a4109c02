package toolbar

import "github.com/1broseidon/floatbar/internal/playback"

// Button is one transport button on the strip. Labels are ASCII because the
// window is rendered with an X core font.
type Button struct {
	Key   string
	Label string
}

// TransportButtons returns the strip buttons in display order.
func TransportButtons() []Button {
	return []Button{
		{Key: playback.KeyRewind, Label: "|<<"},
		{Key: playback.KeyPlay, Label: ">"},
		{Key: playback.KeyPause, Label: "||"},
		{Key: playback.KeyStop, Label: "[]"},
		{Key: playback.KeyFastForward, Label: ">>|"},
	}
}

type cellKind int

const (
	cellTransport cellKind = iota
	cellToggle
	cellVoice
	cellSpeed
)

// cell is a clickable region of the toolbar. Index points into the buttons,
// voices or speeds slice depending on kind.
type cell struct {
	kind  cellKind
	index int
	x     int
	width int
}

// layout computes cell geometry for the current config and panel state. The
// window is one row of square transport buttons, a panel toggle, and, when
// expanded, voice and speed cells to the right.
type layout struct {
	size     int // button edge, also window height
	buttons  []Button
	voices   []string
	speeds   []string
	expanded bool
}

func (l layout) cells() []cell {
	out := make([]cell, 0, len(l.buttons)+1+len(l.voices)+len(l.speeds))
	x := 0
	for i := range l.buttons {
		out = append(out, cell{kind: cellTransport, index: i, x: x, width: l.size})
		x += l.size
	}
	out = append(out, cell{kind: cellToggle, x: x, width: l.size / 2})
	x += l.size / 2
	if l.expanded {
		for i := range l.voices {
			out = append(out, cell{kind: cellVoice, index: i, x: x, width: l.voiceCellWidth()})
			x += l.voiceCellWidth()
		}
		for i := range l.speeds {
			out = append(out, cell{kind: cellSpeed, index: i, x: x, width: l.size})
			x += l.size
		}
	}
	return out
}

func (l layout) voiceCellWidth() int {
	return l.size * 2
}

// collapsedWidth is the strip plus the panel toggle.
func (l layout) collapsedWidth() int {
	return len(l.buttons)*l.size + l.size/2
}

// expandedWidth is the full width with the options panel open.
func (l layout) expandedWidth() int {
	return l.collapsedWidth() + len(l.voices)*l.voiceCellWidth() + len(l.speeds)*l.size
}

func (l layout) width() int {
	if l.expanded {
		return l.expandedWidth()
	}
	return l.collapsedWidth()
}

// hitTest maps a window-local point to a cell.
func (l layout) hitTest(x, y int) (cell, bool) {
	if y < 0 || y >= l.size {
		return cell{}, false
	}
	for _, c := range l.cells() {
		if x >= c.x && x < c.x+c.width {
			return c, true
		}
	}
	return cell{}, false
}
