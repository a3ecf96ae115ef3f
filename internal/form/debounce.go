package form

import (
	"sync"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler schedules with the runtime timer.
type SystemScheduler struct{}

func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer collapses bursts of triggers into one callback that runs after a
// quiet period. Trigger cancels any pending callback and schedules a new one,
// so at most one callback is pending at a time.
//
// The Debouncer shares the form's lock: Trigger, Pending and Stop must be
// called with lock held, and callbacks run with lock held.
type Debouncer struct {
	quiet     time.Duration
	scheduler Scheduler
	lock      sync.Locker

	timer Timer
	seq   uint64
}

// NewDebouncer creates a Debouncer. A nil scheduler uses SystemScheduler.
func NewDebouncer(quiet time.Duration, scheduler Scheduler, lock sync.Locker) *Debouncer {
	if scheduler == nil {
		scheduler = SystemScheduler{}
	}
	return &Debouncer{quiet: quiet, scheduler: scheduler, lock: lock}
}

// Trigger restarts the quiet period; fn runs when it elapses without another Trigger.
func (d *Debouncer) Trigger(fn func()) {
	d.cancel()
	seq := d.seq
	d.timer = d.scheduler.AfterFunc(d.quiet, func() {
		d.lock.Lock()
		defer d.lock.Unlock()
		// A timer that fired while a newer Trigger or Stop held the lock is stale.
		if seq != d.seq {
			return
		}
		d.timer = nil
		fn()
	})
}

// Pending reports whether a callback is scheduled.
func (d *Debouncer) Pending() bool {
	return d.timer != nil
}

// Stop cancels the pending callback, if any.
func (d *Debouncer) Stop() {
	d.cancel()
}

func (d *Debouncer) cancel() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}
