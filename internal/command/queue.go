package command

import (
	"sync"
	"time"
)

// Queue dispatches submitted command lines one at a time with a fixed delay
// between launches. Some player backends drop commands that arrive
// back-to-back, so flows that fire several commands (reapplying voice and
// speed together, startup commands) go through here instead of launching
// directly.
type Queue struct {
	launcher Launcher
	spacing  time.Duration

	// after is time.AfterFunc, swappable in tests.
	after func(d time.Duration, f func()) *time.Timer

	mu      sync.Mutex
	pending []string
	running bool
}

// NewQueue returns a queue that launches via launcher, leaving spacing
// between consecutive launches.
func NewQueue(launcher Launcher, spacing time.Duration) *Queue {
	return &Queue{
		launcher: launcher,
		spacing:  spacing,
		after:    time.AfterFunc,
	}
}

// Submit enqueues a command line. Order is preserved: everything submitted
// earlier launches first, each launch separated by the spacing delay.
func (q *Queue) Submit(cmdline string) {
	q.mu.Lock()
	q.pending = append(q.pending, cmdline)
	if q.running {
		q.mu.Unlock()
		return
	}
	q.running = true
	q.mu.Unlock()

	q.dispatchNext()
}

// Len reports how many command lines are waiting (not counting one already
// handed to the launcher).
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *Queue) dispatchNext() {
	q.mu.Lock()
	if len(q.pending) == 0 {
		q.running = false
		q.mu.Unlock()
		return
	}
	cmdline := q.pending[0]
	q.pending = q.pending[1:]
	q.mu.Unlock()

	q.launcher.Launch(cmdline)
	q.after(q.spacing, q.dispatchNext)
}
