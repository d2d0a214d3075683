// SPDX-License-Identifier: Unlicense OR MIT

// Package anim implements the monotonic clock and animated-value sum
// type that drive every piece of interactive motion in the layout
// engine: column/tile resize and move animations, row view-offset
// gestures, workspace-switch animations, and tile alpha fades.
package anim

import "time"

// Clock is a monotonic source of time that can be frozen for tests.
// Production code only ever constructs a Clock via NewClock, which
// binds Now to the real wall clock; tests use NewTestClock to pin
// Now to an explicit, advanceable value while leaving NowUnadjusted
// tied to the real clock, preserving the distinction between a
// window's advertised frame time and the OS's actual delivery time.
type Clock struct {
	frozen *time.Time
}

// NewClock returns a Clock driven by the real wall clock.
func NewClock() *Clock {
	return &Clock{}
}

// NewTestClock returns a Clock whose Now() is pinned to t until
// Advance is called again. NowUnadjusted is never frozen.
func NewTestClock(t time.Time) *Clock {
	return &Clock{frozen: &t}
}

// Now returns the clock's current time. Under a test clock this is the
// frozen value; animations sample it to compute their current position.
func (c *Clock) Now() time.Time {
	if c.frozen != nil {
		return *c.frozen
	}
	return time.Now()
}

// NowUnadjusted returns the real wall-clock time even when the clock
// has been frozen for tests. Code that needs to measure real elapsed
// time for diagnostics (not animation sampling) uses this.
func (c *Clock) NowUnadjusted() time.Time {
	return time.Now()
}

// Advance moves a frozen test clock forward by d. It is a no-op (and
// not expected to be called) on a real clock.
func (c *Clock) Advance(d time.Duration) {
	if c.frozen == nil {
		return
	}
	t := c.frozen.Add(d)
	c.frozen = &t
}

// Set pins a frozen test clock to t.
func (c *Clock) Set(t time.Time) {
	if c.frozen == nil {
		return
	}
	c.frozen = &t
}
