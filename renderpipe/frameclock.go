// SPDX-License-Identifier: Unlicense OR MIT

package renderpipe

import "time"

// FrameClock tracks one output's presentation history: refresh
// interval, VRR mode, and the last presentation timestamp, generalizing
// a single window's hasNextFrame/nextFrame bookkeeping to per-output
// vblank prediction instead of a single delayed-invalidate timer.
type FrameClock struct {
	refresh time.Duration
	vrr     bool

	lastPresented time.Time
	havePresented bool
	sequence      uint32
}

// NewFrameClock returns a FrameClock for an output with the given fixed
// refresh interval (e.g. 16.666ms at 60Hz).
func NewFrameClock(refresh time.Duration) *FrameClock {
	return &FrameClock{refresh: refresh}
}

// SetVRR toggles on_demand_vrr_enabled; the first enable requires the
// caller to also perform a modeset, which this type has no opinion on.
func (c *FrameClock) SetVRR(enabled bool) { c.vrr = enabled }

func (c *FrameClock) VRR() bool { return c.vrr }

// Refresh returns the output's current (fixed) refresh interval.
func (c *FrameClock) Refresh() time.Duration { return c.refresh }

// SetRefresh updates the refresh interval, e.g. after a modeset.
func (c *FrameClock) SetRefresh(d time.Duration) { c.refresh = d }

// Presented records a presentation-complete event. t is the zero Time
// when the DRM completion carried an unknown-realtime timestamp; in
// that case we keep the previous prediction basis rather than treating
// an unrelated epoch as authoritative.
func (c *FrameClock) Presented(t time.Time) {
	if t.IsZero() {
		return
	}
	c.lastPresented = t
	c.havePresented = true
	c.sequence++
}

// Sequence is the DRM completion sequence number to attach to
// presentation feedback.
func (c *FrameClock) Sequence() uint32 { return c.sequence }

// PredictNextVBlank estimates when the next vblank will land, for
// arming the estimated-vblank timer on a no-damage render. If no
// presentation has landed yet, it predicts one refresh interval from
// now.
func (c *FrameClock) PredictNextVBlank(now time.Time) time.Time {
	if !c.havePresented {
		return now.Add(c.refresh)
	}
	next := c.lastPresented.Add(c.refresh)
	for !next.After(now) {
		next = next.Add(c.refresh)
	}
	return next
}

// PresentationRefreshKind classifies the refresh mode to attach to
// Wayland presentation feedback.
type PresentationRefreshKind uint8

const (
	RefreshUnknown PresentationRefreshKind = iota
	RefreshFixed
	RefreshVariable
)

func (c *FrameClock) PresentationRefreshKind() PresentationRefreshKind {
	if !c.havePresented {
		return RefreshUnknown
	}
	if c.vrr {
		return RefreshVariable
	}
	return RefreshFixed
}

// PresentationFlags are the Wayland wp_presentation feedback flags.
type PresentationFlags uint8

const (
	PresentationVsync PresentationFlags = 1 << iota
	PresentationHwCompletion
	PresentationHwClock
)

// Flags builds the feedback flags for a presentation event; monotonic
// reports whether the completion timestamp came from a monotonic
// hardware clock (vs. an unknown-realtime fallback).
func Flags(monotonic bool) PresentationFlags {
	f := PresentationVsync | PresentationHwCompletion
	if monotonic {
		f |= PresentationHwClock
	}
	return f
}
