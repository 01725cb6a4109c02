package command

import (
	"testing"
	"time"
)

type fakeLauncher struct {
	launched []string
}

func (f *fakeLauncher) Launch(cmdline string) {
	f.launched = append(f.launched, cmdline)
}

// manualClock collects scheduled callbacks so tests control when the spacing
// delay "elapses".
type manualClock struct {
	delays  []time.Duration
	pending []func()
}

func (c *manualClock) afterFunc(d time.Duration, f func()) *time.Timer {
	c.delays = append(c.delays, d)
	c.pending = append(c.pending, f)
	return nil
}

func (c *manualClock) fire(t *testing.T) {
	t.Helper()
	if len(c.pending) == 0 {
		t.Fatal("no timer pending")
	}
	f := c.pending[0]
	c.pending = c.pending[1:]
	f()
}

func newTestQueue(spacing time.Duration) (*Queue, *fakeLauncher, *manualClock) {
	l := &fakeLauncher{}
	c := &manualClock{}
	q := NewQueue(l, spacing)
	q.after = c.afterFunc
	return q, l, c
}

func TestQueueOrderAndSpacing(t *testing.T) {
	q, l, c := newTestQueue(150 * time.Millisecond)

	q.Submit("first")
	q.Submit("second")
	q.Submit("third")

	if len(l.launched) != 1 || l.launched[0] != "first" {
		t.Fatalf("after submit: launched %v, want [first]", l.launched)
	}
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}

	c.fire(t)
	c.fire(t)
	if got := len(l.launched); got != 3 {
		t.Fatalf("launched %d commands, want 3", got)
	}
	for i, want := range []string{"first", "second", "third"} {
		if l.launched[i] != want {
			t.Errorf("launch %d = %q, want %q", i, l.launched[i], want)
		}
	}
	for _, d := range c.delays {
		if d != 150*time.Millisecond {
			t.Errorf("scheduled delay %v, want 150ms", d)
		}
	}
}

func TestQueueDrainsAndRestarts(t *testing.T) {
	q, l, c := newTestQueue(time.Millisecond)

	q.Submit("a")
	c.fire(t) // drain timer finds the queue empty

	q.Submit("b")
	if len(l.launched) != 2 {
		t.Fatalf("launched %v, want [a b]", l.launched)
	}
	c.fire(t)
	if len(c.pending) != 0 {
		t.Fatal("queue left a timer pending after draining")
	}
}

func TestQueueSubmitWhileWaiting(t *testing.T) {
	q, l, c := newTestQueue(time.Millisecond)

	q.Submit("a")
	q.Submit("b")
	// "a" launched, timer pending for "b"; a late submit joins the line.
	q.Submit("c")
	c.fire(t)
	c.fire(t)
	c.fire(t)

	want := []string{"a", "b", "c"}
	if len(l.launched) != len(want) {
		t.Fatalf("launched %v, want %v", l.launched, want)
	}
	for i := range want {
		if l.launched[i] != want[i] {
			t.Errorf("launch %d = %q, want %q", i, l.launched[i], want[i])
		}
	}
}

func TestExecutorSkipsEmpty(t *testing.T) {
	// Must not panic or spawn anything.
	Executor{}.Launch("")
	Executor{}.Launch("   \t ")
}
