// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package debounce implements a cancellable scheduled task: each Trigger
// replaces the previously scheduled task, and the task only runs once the
// input has been quiet for the configured delay.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs at most one pending task at a time. Every task carries a
// generation number; a timer whose generation is no longer current never
// runs its task, even if it fired concurrently with a newer Trigger.
//
// Tasks run while the Debouncer's lock is held, so a task must not call
// back into the same Debouncer.
type Debouncer struct {
	mu      sync.Mutex
	clock   Clock
	delay   time.Duration
	gen     uint64
	timer   Timer
	task    func()
	pending bool
}

// New returns a Debouncer with the given quiet interval. A nil clock uses
// RealClock.
func New(delay time.Duration, clock Clock) *Debouncer {
	if clock == nil {
		clock = RealClock{}
	}
	return &Debouncer{clock: clock, delay: delay}
}

// Delay returns the quiet interval.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Trigger schedules task to run after the quiet interval, cancelling any
// task still pending. It reports whether a pending task was cancelled.
func (d *Debouncer) Trigger(task func()) (cancelled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cancelled = d.cancelLocked()

	d.gen++
	gen := d.gen
	d.task = task
	d.pending = true
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
	return cancelled
}

// Flush runs the pending task immediately. It reports whether a task ran.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.pending {
		return false
	}
	task := d.task
	d.cancelLocked()
	d.gen++
	task()
	return true
}

// Stop cancels the pending task. It reports whether a task was cancelled.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	cancelled := d.cancelLocked()
	d.gen++
	return cancelled
}

// Pending reports whether a task is waiting for its quiet interval.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.pending || gen != d.gen {
		return
	}
	task := d.task
	d.task = nil
	d.timer = nil
	d.pending = false
	task()
}

func (d *Debouncer) cancelLocked() bool {
	if !d.pending {
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = nil
	d.task = nil
	d.pending = false
	return true
}
