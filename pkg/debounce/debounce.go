// Package debounce runs a single delayed task that is re-armed by every
// trigger and dropped when superseded or cancelled.
package debounce

import (
	"sync"
	"time"
)

// Debouncer owns at most one pending task.
type Debouncer struct {
	delay time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
}

// New returns a Debouncer with the given quiet period.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiet period, replacing any pending task.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.generation++
	gen := d.generation

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A timer that fired while being replaced must not run.
		if gen != d.generation {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		fn()
	})
}

// Cancel drops the pending task, if any. It reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	pending := d.timer != nil
	d.stopLocked()
	d.generation++
	return pending
}

// Pending reports whether a task is waiting for its quiet period to end.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
