// SPDX-License-Identifier: Unlicense OR MIT

package renderpipe

import (
	"time"

	"github.com/wayscroll/wayscroll/handle"
	"github.com/wayscroll/wayscroll/internal/wlog"
	"github.com/wayscroll/wayscroll/render"
)

// Output ties a Scheduler, FrameClock, and Compositor together for one
// physical output, and tracks the per-surface throttling state for
// every mapped client surface currently visible on it.
type Output struct {
	name       string
	scheduler  *Scheduler
	clock      *FrameClock
	compositor Compositor
	flush      FallbackFlusher

	throttles map[handle.Surface]*SurfaceFrameThrottlingState
}

// NewOutput builds the render pipeline state for one output.
func NewOutput(name string, refresh time.Duration, c Compositor) *Output {
	return &Output{
		name:       name,
		scheduler:  NewScheduler(name),
		clock:      NewFrameClock(refresh),
		compositor: c,
		throttles:  make(map[handle.Surface]*SurfaceFrameThrottlingState),
	}
}

func (o *Output) Scheduler() *Scheduler { return o.scheduler }
func (o *Output) Clock() *FrameClock    { return o.clock }

// QueueRedraw requests a redraw on this output.
func (o *Output) QueueRedraw() { o.scheduler.QueueRedraw() }

// Attempt renders and, if there's damage, submits a frame. It should
// only be called while the scheduler is Queued; callers typically loop
// over outputs whose Scheduler().State() == RedrawQueued once per event
// loop tick.
func (o *Output) Attempt(elements []render.Element, surfaceUpdated func(handle.Surface)) error {
	flags := DefaultPlaneFlags(o.clock.VRR())
	plan, err := o.compositor.RenderFrame(elements, flags)
	if err != nil {
		wlog.DRMTransient(o.name, err)
		return err
	}
	if !plan.HasDamage {
		o.scheduler.NoDamage()
		return nil
	}
	if plan.NeedsSync && plan.FenceWait != nil {
		plan.FenceWait()
	}
	if err := o.compositor.QueueFrame(plan); err != nil {
		wlog.DRMTransient(o.name, err)
		return err
	}
	o.scheduler.Submitted()
	for _, e := range elements {
		if e.Kind == render.KindSurface && e.Surface != nil {
			surfaceUpdated(e.Surface)
		}
	}
	return nil
}

// VBlank handles the hardware completion event: updates the frame
// clock's presentation time, and reports whether the caller should
// send frame callbacks now (as opposed to deferring to the next
// redraw).
func (o *Output) VBlank(presentationTime time.Time, monotonic bool, animating bool) (shouldQueueRedraw, sendCallbacks bool) {
	o.clock.Presented(presentationTime)
	shouldQueueRedraw = o.scheduler.VBlank(animating)
	sendCallbacks = !shouldQueueRedraw
	return
}

// EstimatedVBlankDeadline is the duration to arm the estimated-vblank
// timer for after a no-damage Attempt.
func (o *Output) EstimatedVBlankDeadline(now time.Time) time.Duration {
	next := o.clock.PredictNextVBlank(now)
	if d := next.Sub(now); d > 0 {
		return d
	}
	return o.clock.Refresh()
}

// EstimatedVBlankFired handles the estimated-vblank timer firing.
func (o *Output) EstimatedVBlankFired() (shouldQueueRedraw bool) {
	return o.scheduler.EstimatedVBlankTimer()
}

// throttleFor returns (creating if needed) the throttling state for a
// surface.
func (o *Output) throttleFor(s handle.Surface) *SurfaceFrameThrottlingState {
	t, ok := o.throttles[s]
	if !ok {
		t = &SurfaceFrameThrottlingState{}
		o.throttles[s] = t
	}
	return t
}

// FrameCallbacksDue returns the surfaces that should receive a frame
// callback now, given the output's current frame-callback sequence.
// Surfaces not passed in `mapped` are dropped from the throttle table,
// since an unmapped surface will never be notified again.
func (o *Output) FrameCallbacksDue(mapped []handle.Surface) []handle.Surface {
	seq := uint64(o.clock.Sequence())
	live := make(map[handle.Surface]bool, len(mapped))
	var due []handle.Surface
	for _, s := range mapped {
		live[s] = true
		if o.throttleFor(s).ShouldNotify(seq) {
			due = append(due, s)
		}
	}
	for s := range o.throttles {
		if !live[s] {
			delete(o.throttles, s)
		}
	}
	return due
}

// FlushDue reports whether the fallback flush timer should fire,
// forcing a frame-callback flush on an output with no damage so
// clients never starve.
func (o *Output) FlushDue(now time.Time) bool {
	return o.flush.Due(now)
}
