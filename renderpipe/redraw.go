// SPDX-License-Identifier: Unlicense OR MIT

// Package renderpipe drives the per-output render loop: the RedrawState
// state machine, frame submission bookkeeping, presentation feedback,
// VRR, and client frame-callback throttling. It generalizes a
// single-window "animate until quiescent, then arm one more frame"
// loop to per-output vblank-driven scheduling across many outputs.
package renderpipe

import "github.com/wayscroll/wayscroll/internal/wlog"

// RedrawState is the per-output redraw scheduling state.
type RedrawState uint8

const (
	// Idle: nothing queued, no pending vblank or timer.
	RedrawIdle RedrawState = iota
	// Queued: a redraw has been requested and will be attempted on the
	// next tick of the event loop.
	RedrawQueued
	// WaitingForVBlank: a frame was submitted to the kernel and we are
	// waiting for the hardware completion event.
	RedrawWaitingForVBlank
	// WaitingForEstimatedVBlank: the last render had no damage, so
	// instead of submitting we armed a timer predicting when the next
	// vblank would have landed.
	RedrawWaitingForEstimatedVBlank
	// WaitingForEstimatedVBlankAndQueued: like WaitingForEstimatedVBlank,
	// but a new redraw was requested before the timer fired.
	RedrawWaitingForEstimatedVBlankAndQueued
)

func (s RedrawState) String() string {
	switch s {
	case RedrawIdle:
		return "Idle"
	case RedrawQueued:
		return "Queued"
	case RedrawWaitingForVBlank:
		return "WaitingForVBlank"
	case RedrawWaitingForEstimatedVBlank:
		return "WaitingForEstimatedVBlank"
	case RedrawWaitingForEstimatedVBlankAndQueued:
		return "WaitingForEstimatedVBlankAndQueued"
	default:
		return "unknown"
	}
}

// Scheduler owns one output's RedrawState transitions. It holds no
// rendering logic of its own; callers drive it from the DRM submission
// path and the vblank/timer event sources.
type Scheduler struct {
	output string
	state  RedrawState
	// redrawNeeded is WaitingForVBlank's embedded flag: a queue_redraw
	// that arrives while we're already waiting for hardware completion
	// doesn't submit again, it just remembers to redraw once vblank
	// lands.
	redrawNeeded bool
}

// NewScheduler returns a Scheduler in the Idle state for the named
// output, used only for diagnostics (log lines, VBlankAnomaly).
func NewScheduler(output string) *Scheduler {
	return &Scheduler{output: output}
}

func (s *Scheduler) State() RedrawState { return s.state }

// QueueRedraw requests a redraw. Its effect depends on the current
// state: Idle/Queued both end up Queued; WaitingForVBlank just sets
// redrawNeeded; WaitingForEstimatedVBlank advances to the "and queued"
// variant so the timer firing moves straight to Queued instead of Idle.
func (s *Scheduler) QueueRedraw() {
	switch s.state {
	case RedrawIdle, RedrawQueued:
		s.state = RedrawQueued
	case RedrawWaitingForVBlank:
		s.redrawNeeded = true
	case RedrawWaitingForEstimatedVBlank:
		s.state = RedrawWaitingForEstimatedVBlankAndQueued
	case RedrawWaitingForEstimatedVBlankAndQueued:
		// already queued
	}
}

// SubmitResult is what the frame-submission path reports back after
// attempting a render for a Queued output.
type SubmitResult struct {
	// Submitted is true when a composition was actually sent to the
	// kernel (queue_frame); false means no damage, nothing to show.
	Submitted bool
}

// Submitted transitions Queued -> WaitingForVBlank after a real
// hardware commit. Calling it outside Queued is a caller bug; it is
// logged and otherwise ignored so a misbehaving caller can't corrupt
// the state machine into an unrecoverable combination.
func (s *Scheduler) Submitted() {
	if s.state != RedrawQueued {
		wlog.InvariantViolation("Scheduler.Submitted called outside Queued")
		return
	}
	s.state = RedrawWaitingForVBlank
	s.redrawNeeded = false
}

// NoDamage transitions Queued -> WaitingForEstimatedVBlank: the render
// attempt produced nothing new to show, so instead of a real commit we
// arm an estimated-vblank timer.
func (s *Scheduler) NoDamage() {
	if s.state != RedrawQueued {
		wlog.InvariantViolation("Scheduler.NoDamage called outside Queued")
		return
	}
	s.state = RedrawWaitingForEstimatedVBlank
}

// VBlank is the hardware (or, for a rogue event, logged-and-treated-as)
// completion signal. It reports whether the caller should queue
// another redraw (because redrawNeeded was set, or the caller passed
// animating=true for unfinished client/layout animations) versus send
// frame callbacks and go idle.
func (s *Scheduler) VBlank(animating bool) (shouldQueueRedraw bool) {
	switch s.state {
	case RedrawWaitingForVBlank:
		needed := s.redrawNeeded || animating
		s.redrawNeeded = false
		if needed {
			s.state = RedrawQueued
		} else {
			s.state = RedrawIdle
		}
		return needed
	case RedrawWaitingForEstimatedVBlankAndQueued:
		// A rogue vblank arriving while we were only waiting on a
		// timer; log it but keep making progress as if the timer had
		// just fired into Queued.
		wlog.VBlankAnomaly(s.output, s.state.String())
		s.state = RedrawQueued
		return true
	case RedrawWaitingForEstimatedVBlank:
		wlog.VBlankAnomaly(s.output, s.state.String())
		s.state = RedrawIdle
		return false
	default:
		wlog.VBlankAnomaly(s.output, s.state.String())
		return false
	}
}

// EstimatedVBlankTimer is the estimated-vblank timer firing.
// WaitingForEstimatedVBlank -> Idle; WaitingForEstimatedVBlankAndQueued
// -> Queued.
func (s *Scheduler) EstimatedVBlankTimer() (shouldQueueRedraw bool) {
	switch s.state {
	case RedrawWaitingForEstimatedVBlank:
		s.state = RedrawIdle
		return false
	case RedrawWaitingForEstimatedVBlankAndQueued:
		s.state = RedrawQueued
		return true
	default:
		wlog.InvariantViolation("estimated vblank timer fired outside an estimated-vblank state")
		return false
	}
}
