// SPDX-License-Identifier: Unlicense OR MIT

package renderpipe

import (
	"time"

	"github.com/wayscroll/wayscroll/render"
)

// PlaneFlags controls which DRM planes a composition may use and
// whether cursor-only damage should be suppressed.
type PlaneFlags uint8

const (
	AllowPrimaryPlaneScanout PlaneFlags = 1 << iota
	AllowCursorPlaneScanout
	AllowOverlayPlaneScanout
	// SkipCursorOnlyUpdates is set when VRR is active, to avoid waking
	// the monitor solely for cursor movement.
	SkipCursorOnlyUpdates
)

// DefaultPlaneFlags returns the usual set for an output, adding
// SkipCursorOnlyUpdates when vrr is enabled.
func DefaultPlaneFlags(vrr bool) PlaneFlags {
	f := AllowPrimaryPlaneScanout | AllowCursorPlaneScanout | AllowOverlayPlaneScanout
	if vrr {
		f |= SkipCursorOnlyUpdates
	}
	return f
}

// Compositor produces a composition plan from render elements and
// submits it to the kernel. The real implementation lives outside this
// module (DRM atomic commit, GPU fence waits); this interface is the
// seam renderpipe is built against.
type Compositor interface {
	// RenderFrame builds a composition plan across primary, overlay,
	// and cursor planes from elements, honoring flags.
	RenderFrame(elements []render.Element, flags PlaneFlags) (Plan, error)
	// QueueFrame submits plan to the kernel. needsSync callers must
	// have already waited on the primary element's fence.
	QueueFrame(plan Plan) error
}

// Plan is an opaque composition plan returned by Compositor.RenderFrame.
type Plan struct {
	// HasDamage is false when the composition has nothing new to show,
	// in which case the caller should not call QueueFrame at all.
	HasDamage bool
	// NeedsSync reports whether the primary element requires a GPU
	// fence wait before QueueFrame.
	NeedsSync bool
	// FenceWait blocks until the primary element's GPU work is visible
	// to the display controller. Nil when NeedsSync is false.
	FenceWait func()
}

// SurfaceFrameThrottlingState tracks, per mapped client surface, the
// last output frame-callback sequence it was notified of, so a surface
// receives at most one frame callback per output refresh cycle.
type SurfaceFrameThrottlingState struct {
	lastSeen uint64
	seen     bool
}

// ShouldNotify reports whether a frame callback should be sent for the
// given output sequence, and records that it was sent.
func (s *SurfaceFrameThrottlingState) ShouldNotify(outputSequence uint64) bool {
	if s.seen && s.lastSeen == outputSequence {
		return false
	}
	s.lastSeen = outputSequence
	s.seen = true
	return true
}

// FallbackFlushInterval is how often frame callbacks are flushed on
// outputs that have no damage, so clients never starve waiting for a
// frame event that will never come.
const FallbackFlushInterval = 995 * time.Millisecond

// FallbackFlusher arms and re-arms the fallback flush timer for one
// output. Callers arm their event loop's timer source with
// FallbackFlushInterval and call Due when it fires.
type FallbackFlusher struct {
	last time.Time
}

// Due reports whether the fallback timer should fire given now, and
// resets its window if so.
func (f *FallbackFlusher) Due(now time.Time) bool {
	if f.last.IsZero() {
		f.last = now
		return false
	}
	if now.Sub(f.last) < FallbackFlushInterval {
		return false
	}
	f.last = now
	return true
}
