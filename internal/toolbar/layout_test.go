package toolbar

import "testing"

func testLayout(expanded bool) layout {
	return layout{
		size:     40,
		buttons:  TransportButtons(),
		voices:   []string{"alice", "bob"},
		speeds:   []string{"1.0", "1.5"},
		expanded: expanded,
	}
}

func TestCollapsedWidth(t *testing.T) {
	l := testLayout(false)
	// 5 transport buttons plus the half-width panel toggle.
	want := 5*40 + 20
	if got := l.width(); got != want {
		t.Fatalf("width() = %d, want %d", got, want)
	}
	if l.width() != l.collapsedWidth() {
		t.Fatal("collapsed layout must report collapsedWidth")
	}
}

func TestExpandedWidth(t *testing.T) {
	l := testLayout(true)
	want := l.collapsedWidth() + 2*80 + 2*40
	if got := l.width(); got != want {
		t.Fatalf("width() = %d, want %d", got, want)
	}
}

func TestCellsContiguous(t *testing.T) {
	l := testLayout(true)
	x := 0
	for i, c := range l.cells() {
		if c.x != x {
			t.Fatalf("cell %d starts at %d, want %d", i, c.x, x)
		}
		x += c.width
	}
	if x != l.width() {
		t.Fatalf("cells cover %d px, layout width %d", x, l.width())
	}
}

func TestHitTest(t *testing.T) {
	l := testLayout(true)

	tests := []struct {
		name     string
		x, y     int
		wantKind cellKind
		wantIdx  int
		wantOK   bool
	}{
		{"first button", 5, 20, cellTransport, 0, true},
		{"play button", 45, 0, cellTransport, 1, true},
		{"last button edge", 199, 39, cellTransport, 4, true},
		{"toggle", 205, 20, cellToggle, 0, true},
		{"first voice", 230, 20, cellVoice, 0, true},
		{"second voice", 310, 20, cellVoice, 1, true},
		{"first speed", 385, 20, cellSpeed, 0, true},
		{"below strip", 10, 40, 0, 0, false},
		{"above strip", 10, -1, 0, 0, false},
		{"past the end", 1000, 20, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := l.hitTest(tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("hitTest(%d,%d) ok = %v, want %v", tt.x, tt.y, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if c.kind != tt.wantKind || c.index != tt.wantIdx {
				t.Fatalf("hitTest(%d,%d) = kind %d idx %d, want kind %d idx %d",
					tt.x, tt.y, c.kind, c.index, tt.wantKind, tt.wantIdx)
			}
		})
	}
}

func TestCollapsedHitTestExcludesPanel(t *testing.T) {
	l := testLayout(false)
	if _, ok := l.hitTest(230, 20); ok {
		t.Fatal("collapsed layout must not expose panel cells")
	}
}
