// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/handle"
)

// GrabKind tags which interactive-grab variant is active, following
// the render package's tagged-sum-type convention instead of an
// interface of heap-allocated trait objects.
type GrabKind uint8

const (
	GrabNone GrabKind = iota
	GrabMove
	GrabResize
	// GrabSpatialMovement is the middle-button row-pan gesture.
	GrabSpatialMovement
	GrabDnD
	GrabPickColor
	GrabPickWindow
)

// StartData is common to every grab kind: which button started it and
// which surface had focus at that time.
type StartData struct {
	Button  uint8
	Surface handle.Window
}

// Grab is the active interactive pointer grab, if any.
type Grab struct {
	Kind  GrabKind
	Start StartData
	// ResizeEdges is populated for GrabResize.
	ResizeEdges handle.Edges
}

// ConstraintKind is the active pointer-constraint mode on the focused
// surface.
type ConstraintKind uint8

const (
	ConstraintNone ConstraintKind = iota
	// ConstraintLocked: the pointer moves only by relative motion
	// deltas; the absolute position from the device is ignored.
	ConstraintLocked
	// ConstraintConfined: absolute motion is clipped to a region.
	ConstraintConfined
)

// Constraint is the active pointer constraint, if any.
type Constraint struct {
	Kind   ConstraintKind
	Region geom.Rectangle // meaningful for ConstraintConfined
}

// HotCorner is one configured screen corner that triggers an action
// when the pointer dwells in it.
type HotCorner struct {
	Region geom.Rectangle
	Action string
}

// OutputLookup finds the output (by its working-area rectangle) that
// contains p, used to re-clip the pointer after motion that would
// otherwise leave all outputs (e.g. at the boundary between two
// differently sized monitors).
type OutputLookup func(p geom.Point) (area geom.Rectangle, ok bool)

// Router drives the pointer-motion pipeline for each move: the active
// constraint, hot corners, then output clipping. It does no
// hit-testing and does not call the active grab; the caller does that
// with the returned MotionResult.
type Router struct {
	corners    []HotCorner
	constraint Constraint
	grab       Grab
	lookup     OutputLookup
	current    geom.Point
	lastOutput geom.Rectangle
	haveOutput bool
}

// NewRouter builds a Router against the given output lookup and hot
// corner set.
func NewRouter(lookup OutputLookup, corners []HotCorner) *Router {
	return &Router{lookup: lookup, corners: corners}
}

// SetConstraint installs or clears the active pointer constraint.
func (r *Router) SetConstraint(c Constraint) { r.constraint = c }

// BeginGrab starts a new interactive grab, replacing any previous one.
func (r *Router) BeginGrab(g Grab) { r.grab = g }

// EndGrab clears the active grab, e.g. on button release or a
// terminating event (stale window destroyed mid-grab, new grab begun
// on the same axis).
func (r *Router) EndGrab() { r.grab = Grab{} }

func (r *Router) ActiveGrab() Grab { return r.grab }

// MotionResult reports what a Motion call produced, for the caller to
// hand to the hit-tested target and, if a DnD grab is active, to the
// layout's drag-and-drop auto-scroll tracking.
type MotionResult struct {
	// Pos is the pointer position actually applied, after constraint
	// and output clipping.
	Pos geom.Point
	// CrossedHotCorner is the action of a hot corner the pointer just
	// entered this call, or "" if none.
	CrossedHotCorner string
	// OutputArea is the working area of the output the pointer now
	// falls within.
	OutputArea geom.Rectangle
	IsDnD      bool
}

// Motion advances the pointer by delta (used when locked) or to an
// absolute position (used otherwise), applying the active constraint,
// hot-corner tracking on the constrained position, and output
// re-clipping in that order.
func (r *Router) Motion(absolute geom.Point, delta geom.Point) MotionResult {
	var next geom.Point
	switch r.constraint.Kind {
	case ConstraintLocked:
		next = geom.Pt(r.current.X+delta.X, r.current.Y+delta.Y)
	case ConstraintConfined:
		next = clampToRect(absolute, r.constraint.Region)
	default:
		next = absolute
	}

	crossed := ""
	for _, hc := range r.corners {
		if hc.Region.Contains(next) && !hc.Region.Contains(r.current) {
			crossed = hc.Action
			break
		}
	}

	if area, ok := r.lookup(next); ok {
		r.lastOutput, r.haveOutput = area, true
	} else if r.haveOutput {
		next = clampToRect(next, r.lastOutput)
	}

	r.current = next
	return MotionResult{
		Pos:              next,
		CrossedHotCorner: crossed,
		OutputArea:       r.lastOutput,
		IsDnD:            r.grab.Kind == GrabDnD,
	}
}

func clampToRect(p geom.Point, r geom.Rectangle) geom.Point {
	x := p.X
	if x < r.Min.X {
		x = r.Min.X
	}
	if x > r.Max.X {
		x = r.Max.X
	}
	y := p.Y
	if y < r.Min.Y {
		y = r.Min.Y
	}
	if y > r.Max.Y {
		y = r.Max.Y
	}
	return geom.Pt(x, y)
}
