package display

import (
	"sync"
	"time"
)

// DefaultToastDuration is how long a notice stays on the board.
const DefaultToastDuration = 3 * time.Second

// Toast is the single ephemeral notice the board can show.
type Toast struct {
	Message string `json:"message"`
	Visible bool   `json:"visible"`
}

// Toaster shows at most one notice at a time. Showing a new notice cancels
// the pending dismissal timer of the previous one, so only the latest
// notice's dismissal ever fires. A prior timer that has already fired and
// is waiting on the lock carries a stale generation and is ignored.
type Toaster struct {
	mu       sync.Mutex
	current  Toast
	seq      int
	timer    *time.Timer
	duration time.Duration
}

func NewToaster(duration time.Duration) *Toaster {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return &Toaster{duration: duration}
}

func (t *Toaster) Show(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.seq++
	seq := t.seq
	t.current = Toast{Message: message, Visible: true}
	t.timer = time.AfterFunc(t.duration, func() { t.dismiss(seq) })
}

func (t *Toaster) dismiss(seq int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.seq {
		return
	}
	t.current.Visible = false
}

func (t *Toaster) Current() Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Stop cancels any pending dismissal timer.
func (t *Toaster) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
