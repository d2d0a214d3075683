// SPDX-License-Identifier: Unlicense OR MIT

package anim

import "time"

// Kind tags which variant of the AnimatedValue sum type is active.
type Kind uint8

const (
	// KindStatic holds a fixed value, no animation.
	KindStatic Kind = iota
	// KindAnimation interpolates between two values along a Curve.
	KindAnimation
	// KindGesture tracks an active user swipe via a SwipeTracker,
	// optionally finishing into an embedded Animation.
	KindGesture
)

// Value is a sum type over Static, Animation, or Gesture. It drives
// the row camera (view offset), tile move/resize offsets, alpha
// fades, and the workspace-switch position.
type Value struct {
	kind Kind

	// Static / Animation shared fields.
	from, to float64
	velocity float64
	curve    Curve
	start    time.Time

	// Gesture fields.
	tracker            SwipeTracker
	deltaFromTracker    float64
	stationary          float64
	isTouchpad          bool
	dndLastEventTime    time.Time
	dndNonzeroStartTime time.Time
	sawNonzeroDelta     bool
	// embedded finishing animation, valid once the gesture has ended
	// and is animating the remainder to its snap point.
	finishing *Value
}

// NewStatic returns a Value fixed at v.
func NewStatic(v float64) Value {
	return Value{kind: KindStatic, from: v, to: v}
}

// StartAnimation begins an eased/spring/decelerating animation from
// `from` to `to`, starting at clock time `start`.
func StartAnimation(from, to float64, curve Curve, start time.Time) Value {
	return Value{kind: KindAnimation, from: from, to: to, curve: curve, start: start}
}

// IsStatic reports whether the value is the Static variant.
func (v *Value) IsStatic() bool {
	return v.kind == KindStatic
}

// IsAnimationOngoing reports whether the value is a not-yet-done
// Animation, or any Gesture (gestures are always "ongoing" until
// explicitly ended).
func (v *Value) IsAnimationOngoing(now time.Time) bool {
	switch v.kind {
	case KindAnimation:
		_, done := v.progress(now)
		return !done
	case KindGesture:
		if v.finishing != nil {
			return v.finishing.IsAnimationOngoing(now)
		}
		return true
	default:
		return false
	}
}

func (v *Value) progress(now time.Time) (float64, bool) {
	if v.curve == nil {
		return 1, true
	}
	t := now.Sub(v.start)
	if t < 0 {
		t = 0
	}
	return v.curve.Eval(t)
}

// Current samples the value at the clock's current time, clamped at
// the animation's endpoints.
func (v *Value) Current(now time.Time) float64 {
	switch v.kind {
	case KindStatic:
		return v.from
	case KindAnimation:
		p, done := v.progress(now)
		if done {
			return v.to
		}
		if _, ok := v.curve.(DecelerationCurve); ok {
			return v.from + p
		}
		return Lerp64(v.from, v.to, p)
	case KindGesture:
		if v.finishing != nil {
			return v.finishing.Current(now)
		}
		return v.tracker.Pos() + v.deltaFromTracker
	}
	return 0
}

// Lerp64 linearly interpolates between a and b by t.
func Lerp64(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Target returns where the value will settle, ignoring a gesture's
// eventual deceleration — i.e. the current gesture position, not a
// projection. Layout code uses this to plan around the *end* of an
// animation without waiting for it.
func (v *Value) Target(now time.Time) float64 {
	switch v.kind {
	case KindStatic:
		return v.from
	case KindAnimation:
		return v.to
	case KindGesture:
		if v.finishing != nil {
			return v.finishing.Target(now)
		}
		return v.tracker.Pos() + v.deltaFromTracker
	}
	return 0
}

// Offset shifts both current and target by dx, used to compensate
// layout shifts below the animated camera (e.g. a column to the left
// of the active one changing width).
func (v *Value) Offset(now time.Time, dx float64) {
	switch v.kind {
	case KindStatic:
		v.from += dx
		v.to += dx
	case KindAnimation:
		cur := v.Current(now)
		v.from += dx
		v.to += dx
		_ = cur
	case KindGesture:
		v.deltaFromTracker += dx
		if v.finishing != nil {
			v.finishing.Offset(now, dx)
		}
	}
}

// BeginGesture seizes the value into the Gesture variant, preserving
// the current position so the transition is visually continuous.
func (v *Value) BeginGesture(now time.Time, isTouchpad bool) {
	cur := v.Current(now)
	*v = Value{
		kind:             KindGesture,
		isTouchpad:       isTouchpad,
		deltaFromTracker: cur,
	}
	v.tracker.Reset()
}

// UpdateGesture accumulates a delta sample into the active gesture.
// It panics if the value is not currently a Gesture; callers must
// check IsGesture first. At most one concurrent gesture per value is
// enforced by the owning Row, not here.
func (v *Value) UpdateGesture(now time.Time, delta float64) {
	if v.kind != KindGesture {
		panic("anim: UpdateGesture on non-gesture value")
	}
	if delta != 0 {
		v.sawNonzeroDelta = true
	}
	v.tracker.AddSample(now, delta)
}

// IsGesture reports whether v is a Gesture that has not been ended
// with EndGestureToSnap.
func (v *Value) IsGesture() bool {
	return v.kind == KindGesture && v.finishing == nil
}

// ProjectedEndPos returns the gesture tracker's projection of where
// the swipe would settle if released now.
func (v *Value) ProjectedEndPos() float64 {
	return v.tracker.ProjectedEndPos() + v.deltaFromTracker
}

// SawNonzeroDelta reports whether the active gesture has ever
// received a nonzero delta sample, used by DnD auto-scroll
// to decide between snapping and collapsing to Static on end.
func (v *Value) SawNonzeroDelta() bool {
	return v.sawNonzeroDelta
}

// EndGestureToSnap finalizes a Gesture by animating its remainder to
// snapTo using curve, starting now.
func (v *Value) EndGestureToSnap(now time.Time, snapTo float64, curve Curve) {
	if v.kind != KindGesture {
		return
	}
	from := v.Current(now)
	anim := StartAnimation(from, snapTo, curve, now)
	v.finishing = &anim
}

// CancelGesture collapses an in-progress gesture to Static(current),
// per cancellation contract.
func (v *Value) CancelGesture(now time.Time) {
	cur := v.Current(now)
	*v = NewStatic(cur)
}

// CollapseToStatic finalizes the Value variant into Static(v) without
// going through a finishing animation — used by DnD auto-scroll when
// a gesture never produced nonzero motion.
func (v *Value) CollapseToStatic(value float64) {
	*v = NewStatic(value)
}

// Replace substitutes v with other, preserving v's current position
// when other is a gesture so the transition never visually jumps.
func (v *Value) Replace(now time.Time, other Value) {
	if other.kind == KindGesture && other.finishing == nil {
		other.deltaFromTracker = v.Current(now) - other.tracker.Pos()
	}
	*v = other
}
