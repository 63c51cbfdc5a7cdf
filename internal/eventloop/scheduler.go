// Package eventloop runs calculator callbacks one at a time on a single
// ordered queue: input events, timer fires and rendering frames.
package eventloop

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop cancels the timer. It returns false if the timer already fired
	// or was already stopped.
	Stop() bool
}

// Scheduler defers work onto the loop. Every callback it runs executes on the
// loop, one at a time, so callers need no locking between callbacks.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
	// RequestFrame runs fn once on the next rendering frame. It must be called
	// from the loop.
	RequestFrame(fn func(now time.Time))
}
