// SPDX-License-Identifier: Unlicense OR MIT

package anim

import "time"

// trailingWindow is the span over which SwipeTracker computes
// instantaneous velocity, discarding older samples. A touchpad-style
// gesture estimator typically pairs a velocity/position extrapolator
// with a decay animation; SwipeTracker folds both roles into one type,
// using a plain trailing-window average instead of a least-squares
// polynomial fit (see DESIGN.md for the substitution rationale).
const trailingWindow = 100 * time.Millisecond

// decayHalfLife controls how fast projected velocity is assumed to
// decay to zero when estimating where a swipe will end.
const decayHalfLife = 120 * time.Millisecond

type sample struct {
	t     time.Time
	value float64
}

// SwipeTracker accumulates (delta, timestamp) samples during an
// interactive gesture (touchpad/touch scroll, DnD auto-scroll) and
// can project where the gesture would come to rest if released now.
type SwipeTracker struct {
	samples []sample
	pos     float64
}

// Reset clears the tracker and seeds it at position 0.
func (s *SwipeTracker) Reset() {
	s.samples = s.samples[:0]
	s.pos = 0
}

// AddSample accumulates a delta at time t.
func (s *SwipeTracker) AddSample(t time.Time, delta float64) {
	s.pos += delta
	s.samples = append(s.samples, sample{t: t, value: s.pos})
	cutoff := t.Add(-trailingWindow)
	i := 0
	for i < len(s.samples) && s.samples[i].t.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.samples = append(s.samples[:0], s.samples[i:]...)
	}
}

// Pos returns the tracker's current accumulated position.
func (s *SwipeTracker) Pos() float64 {
	return s.pos
}

// Velocity returns the instantaneous velocity (units/second) computed
// over the trailing window, or 0 if fewer than two samples are held.
func (s *SwipeTracker) Velocity() float64 {
	if len(s.samples) < 2 {
		return 0
	}
	first, last := s.samples[0], s.samples[len(s.samples)-1]
	dt := last.t.Sub(first.t).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.value - first.value) / dt
}

// ProjectedEndPos returns the position the gesture would settle at if
// released now, assuming velocity decays exponentially to zero with
// decayHalfLife.
func (s *SwipeTracker) ProjectedEndPos() float64 {
	v := s.Velocity()
	if v == 0 {
		return s.pos
	}
	// Integral of v0 * 2^(-t/halfLife) dt from 0 to infinity
	// = v0 * halfLife / ln(2).
	const ln2 = 0.6931471805599453
	tau := decayHalfLife.Seconds() / ln2
	return s.pos + v*tau
}
