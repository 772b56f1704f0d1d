// Package debounce provides a cancellable single-slot timer that
// collapses bursts of calls into one execution after a quiet period.
package debounce

import (
	"sync"
	"time"
)

type Debouncer struct {
	mu    sync.Mutex
	wait  time.Duration
	timer *time.Timer
}

func New(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Schedule arms the timer to run fn after the quiet period. A pending
// earlier fn is dropped: every call resets the countdown.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, fn)
}

// Cancel drops the pending execution, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
