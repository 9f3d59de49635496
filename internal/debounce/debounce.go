// Package debounce coalesces bursts of triggers into a single call after a
// quiet period. Time is supplied by the caller, so a debouncer never starts
// goroutines or timers of its own.
package debounce

import "time"

// Debouncer runs fn once the quiet period since the last Trigger has
// elapsed and Fire is called.
type Debouncer struct {
	delay    time.Duration
	fn       func()
	deadline time.Time
	pending  bool
}

// New creates a debouncer with the given quiet period. A negative delay is
// treated as zero.
func New(delay time.Duration, fn func()) *Debouncer {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool { return d.pending }

// Deadline returns when the scheduled call becomes due. It is the zero
// time when nothing is pending.
func (d *Debouncer) Deadline() time.Time {
	if !d.pending {
		return time.Time{}
	}
	return d.deadline
}

// Trigger schedules a call, restarting the quiet period.
func (d *Debouncer) Trigger(now time.Time) {
	d.deadline = now.Add(d.delay)
	d.pending = true
}

// Fire runs the scheduled call if it is due at now and reports whether it
// ran.
func (d *Debouncer) Fire(now time.Time) bool {
	if !d.pending || now.Before(d.deadline) {
		return false
	}
	return d.Flush()
}

// Flush runs the scheduled call immediately, if any.
func (d *Debouncer) Flush() bool {
	if !d.pending {
		return false
	}
	d.pending = false
	if d.fn != nil {
		d.fn()
	}
	return true
}

// Cancel drops the scheduled call.
func (d *Debouncer) Cancel() {
	d.pending = false
}
