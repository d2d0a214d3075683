// SPDX-License-Identifier: Unlicense OR MIT

// Package row implements the Row (Scrolling Space), the largest state machine in
// the layout engine: a horizontal scroll of columns with view-offset
// gestures, snap points, fullscreen rules, and insert hints.
package row

import (
	"time"

	"github.com/wayscroll/wayscroll/column"
	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/internal/anim"
	"github.com/wayscroll/wayscroll/options"
	"github.com/wayscroll/wayscroll/tile"
)

// closingAnim tracks a closing window's snapshot-driven fade-out
// animation; the tile is destroyed after the animation completes.
type closingAnim struct {
	tile  *tile.Tile
	start time.Time
}

// Row is a horizontally scrollable stack of columns.
type Row struct {
	opts *options.Options

	columns []*column.Column
	active  int

	viewOffset anim.Value

	activatePrevColumnOnRemoval *float64
	viewOffsetToRestore         *float64

	workingArea geom.Rectangle
	parentArea  geom.Rectangle
	viewSize    geom.Size
	scale       float64

	closing []closingAnim

	// gestureOwner is non-nil only while this row owns the single
	// global view-offset gesture.
	gestureOwner *bool
}

// New builds an empty row over the given areas.
func New(opts *options.Options, parentArea geom.Rectangle, viewSize geom.Size, scale float64) *Row {
	r := &Row{
		opts:        opts,
		parentArea:  parentArea,
		viewSize:    viewSize,
		scale:       scale,
		viewOffset:  anim.NewStatic(0),
	}
	r.recomputeWorkingArea()
	return r
}

func (r *Row) recomputeWorkingArea() {
	// Working area starts at a physical-pixel boundary; with scale s,
	// round the origin to the nearest 1/s-aligned pixel.
	r.workingArea = r.parentArea
	if r.scale > 0 {
		r.workingArea.Min.X = roundToScale(r.workingArea.Min.X, r.scale)
		r.workingArea.Min.Y = roundToScale(r.workingArea.Min.Y, r.scale)
	}
}

func roundToScale(v, scale float64) float64 {
	px := 1 / scale
	return px * float64(int(v/px+0.5))
}

func (r *Row) Len() int { return len(r.columns) }
func (r *Row) Columns() []*column.Column { return r.columns }
func (r *Row) ActiveIndex() int { return r.active }
func (r *Row) WorkingArea() geom.Rectangle { return r.workingArea }

func (r *Row) ActiveColumn() *column.Column {
	if len(r.columns) == 0 {
		return nil
	}
	return r.columns[r.active]
}

// ViewOffset returns the current camera offset.
func (r *Row) ViewOffset(now time.Time) float64 {
	return r.viewOffset.Current(now)
}

// columnX returns the left edge x of columns[idx] in row-content space
// (i.e. before the camera offset is applied).
func (r *Row) columnX(idx int) float64 {
	var x float64
	for i := 0; i < idx; i++ {
		x += r.columns[i].ResolveWidth(r.workingArea.Dx()) + r.opts.Gap
	}
	return x
}

func (r *Row) columnWidth(idx int) float64 {
	return r.columns[idx].ResolveWidth(r.workingArea.Dx())
}

// TakeColumns empties r and returns its columns, in order, for
// transplanting into another row during cross-output row migration.
func (r *Row) TakeColumns() []*column.Column {
	cols := r.columns
	r.columns = nil
	r.active = 0
	return cols
}

// AdoptColumns appends cols (taken from another row via TakeColumns)
// onto the end of r.
func (r *Row) AdoptColumns(cols []*column.Column) {
	for _, c := range cols {
		r.columns = append(r.columns, c)
	}
	if r.active >= len(r.columns) {
		r.active = len(r.columns) - 1
	}
	if r.active < 0 {
		r.active = 0
	}
}

// InsertColumn inserts c at idx, clamped to [0, Len()].
func (r *Row) InsertColumn(idx int, c *column.Column) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(r.columns) {
		idx = len(r.columns)
	}
	r.columns = append(r.columns, nil)
	copy(r.columns[idx+1:], r.columns[idx:])
	r.columns[idx] = c
	if idx <= r.active && len(r.columns) > 1 {
		r.active++
	}
	if len(r.columns) == 1 {
		r.active = 0
	}
}

// RemoveColumnAt removes the column at idx and keeps the active index
// on a valid column. It does not move the camera: an offset saved with
// SaveViewOffsetForRemoval is applied by the next ActivateColumn call,
// in place of a fit/center target.
func (r *Row) RemoveColumnAt(idx int) {
	if idx < 0 || idx >= len(r.columns) {
		return
	}
	r.columns = append(r.columns[:idx], r.columns[idx+1:]...)
	if len(r.columns) == 0 {
		r.active = 0
		return
	}
	if r.active >= len(r.columns) {
		r.active = len(r.columns) - 1
	} else if idx < r.active {
		r.active--
	}
}

// SaveViewOffsetForRemoval arms activatePrevColumnOnRemoval with the
// current view offset, so that if the active column is removed next,
// the camera restores to this position rather than refitting.
func (r *Row) SaveViewOffsetForRemoval(now time.Time) {
	v := r.ViewOffset(now)
	r.activatePrevColumnOnRemoval = &v
}

// ActivateColumn starts a camera animation to bring columns[idx] into
// view: Never (fit), Always/single-column (center), OnOverflow.
func (r *Row) ActivateColumn(idx int, now time.Time) {
	if idx < 0 || idx >= len(r.columns) {
		return
	}
	r.active = idx
	target := r.targetOffsetForActive(now)
	cur := r.ViewOffset(now)
	if target == cur {
		return
	}
	r.viewOffset = anim.StartAnimation(cur, target, anim.EaseOutCubic, now)
}

func (r *Row) targetOffsetForActive(now time.Time) float64 {
	if r.viewOffsetToRestore != nil {
		v := *r.viewOffsetToRestore
		r.viewOffsetToRestore = nil
		return v
	}
	if r.activatePrevColumnOnRemoval != nil {
		v := *r.activatePrevColumnOnRemoval
		r.activatePrevColumnOnRemoval = nil
		return v
	}
	idx := r.active
	colW := r.columnWidth(idx)
	colX := r.columnX(idx)
	waW := r.workingArea.Dx()

	centerSingle := r.opts.AlwaysCenterSingleColumn && len(r.columns) <= 1
	switch {
	case r.opts.CenterFocusedColumn == options.CenterAlways || centerSingle:
		return -(colX - (waW-colW)/2)
	case r.opts.CenterFocusedColumn == options.CenterOnOverflow:
		if r.overflows(idx) {
			return -(colX - (waW-colW)/2)
		}
		return r.fitOffset(idx, now)
	default:
		return r.fitOffset(idx, now)
	}
}

// overflows reports whether column idx together with its neighbours
// on both sides (plus their gaps) is wider than the working area, the
// OnOverflow condition.
func (r *Row) overflows(idx int) bool {
	waW := r.workingArea.Dx()
	var adj float64
	if idx > 0 {
		adj += r.columnWidth(idx-1) + r.opts.Gap
	}
	if idx < len(r.columns)-1 {
		adj += r.columnWidth(idx+1) + r.opts.Gap
	}
	return adj+r.columnWidth(idx) > waW
}

// fitOffset computes the minimum-motion offset that makes column idx
// fully visible, preferring the side closer to the current view;
// columns wider than the view are left-aligned, matching the Never
// placement mode.
func (r *Row) fitOffset(idx int, now time.Time) float64 {
	colW := r.columnWidth(idx)
	colX := r.columnX(idx)
	waW := r.workingArea.Dx()
	cur := r.ViewOffset(now)

	if colW >= waW {
		return -colX
	}
	// Current visible window, in content space, is [-cur, -cur+waW).
	visMin := -cur
	visMax := -cur + waW
	if colX < visMin {
		return -colX
	}
	if colX+colW > visMax {
		return -(colX + colW - waW)
	}
	return cur
}

// BeginViewOffsetGesture seizes view_offset into a Gesture. The
// caller is responsible for enforcing at most one ongoing gesture
// across the whole Layout.
func (r *Row) BeginViewOffsetGesture(now time.Time, isTouchpad bool) {
	r.viewOffset.BeginGesture(now, isTouchpad)
}

// touchpadNormalization is the px/unit factor applied to touchpad
// deltas before accumulation.
func (r *Row) touchpadNormalization() float64 {
	return r.workingArea.Dx() / 1200
}

// UpdateViewOffsetGesture accumulates a delta into the active
// gesture.
func (r *Row) UpdateViewOffsetGesture(now time.Time, delta float64, isTouchpad bool) {
	if isTouchpad {
		delta *= r.touchpadNormalization()
	}
	r.viewOffset.UpdateGesture(now, delta)
}

// snapPoint is one candidate end position for a view-offset gesture.
type snapPoint struct {
	offset float64
	colIdx int
	left   bool // true if this is the column's left-align snap
}

// computeSnaps builds the candidate snap list: left/right-align snaps
// per column (only the left-align snap for a column whose active tile
// is fullscreen), plus OnOverflow center snaps, clamped to [leftmost,
// rightmost]. Maximize padding and working-area struts are not taken
// into account.
func (r *Row) computeSnaps() []snapPoint {
	var snaps []snapPoint
	waW := r.workingArea.Dx()
	for i, c := range r.columns {
		colW := r.columnWidth(i)
		colX := r.columnX(i)
		if c.ActiveTile() != nil && c.ActiveTile().IsFullscreen() {
			snaps = append(snaps, snapPoint{offset: -colX, colIdx: i, left: true})
			continue
		}
		snaps = append(snaps, snapPoint{offset: -colX, colIdx: i, left: true})
		snaps = append(snaps, snapPoint{offset: -(colX + colW - waW), colIdx: i, left: false})
		if r.opts.CenterFocusedColumn == options.CenterOnOverflow {
			adjW := 0.0
			if i > 0 {
				adjW = r.columnWidth(i - 1)
			} else if i < len(r.columns)-1 {
				adjW = r.columnWidth(i + 1)
			}
			if adjW > waW-colW-3*r.opts.Gap {
				snaps = append(snaps, snapPoint{offset: -(colX - (waW-colW)/2), colIdx: i})
			}
		}
	}
	if len(snaps) == 0 {
		return snaps
	}
	lo, hi := snaps[0].offset, snaps[0].offset
	for _, s := range snaps {
		if s.offset < lo {
			lo = s.offset
		}
		if s.offset > hi {
			hi = s.offset
		}
	}
	for i := range snaps {
		snaps[i].offset = geom.Clamp(snaps[i].offset, lo, hi)
	}
	return snaps
}

// EndViewOffsetGesture finalizes the gesture: projects the end
// position, snaps to the nearest candidate, extends the target column
// in the gesture's direction (non-centered modes only), and starts an
// anim.EaseOutExpo animation to the snap. The gesture's release
// velocity does not seed that animation.
func (r *Row) EndViewOffsetGesture(now time.Time, isTouchpad bool) {
	if !r.viewOffset.IsGesture() {
		return
	}
	if !r.viewOffset.SawNonzeroDelta() {
		r.viewOffset.CollapseToStatic(r.viewOffset.Current(now))
		return
	}
	projected := r.viewOffset.ProjectedEndPos()
	snaps := r.computeSnaps()
	if len(snaps) == 0 {
		r.viewOffset.CancelGesture(now)
		return
	}
	best := snaps[0]
	bestDist := absf(snaps[0].offset - projected)
	for _, s := range snaps[1:] {
		if d := absf(s.offset - projected); d < bestDist {
			best, bestDist = s, d
		}
	}
	movingRight := projected < r.ViewOffset(now)
	if r.opts.CenterFocusedColumn != options.CenterAlways {
		best = r.extendToFurthestColumn(best, movingRight)
	}
	r.active = best.colIdx
	r.viewOffset.EndGestureToSnap(now, best.offset, anim.EaseOutExpo)
}

// extendToFurthestColumn extends the chosen snap column in the
// gesture direction to the furthest column still entirely within the
// viewport once it settles at best.offset: rightward, the furthest
// column whose right edge does not exceed the viewport's right edge;
// leftward, the furthest column whose left edge does not precede the
// viewport's left edge.
func (r *Row) extendToFurthestColumn(best snapPoint, movingRight bool) snapPoint {
	idx := best.colIdx
	viewLeft := -best.offset
	viewRight := -best.offset + r.workingArea.Dx()
	if movingRight {
		for idx+1 < len(r.columns) {
			nx := r.columnX(idx + 1)
			if nx+r.columnWidth(idx+1) > viewRight {
				break
			}
			idx++
		}
	} else {
		for idx > 0 {
			px := r.columnX(idx - 1)
			if px < viewLeft {
				break
			}
			idx--
		}
	}
	best.colIdx = idx
	return best
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// DnDScrollGesture advances the gesture by
// edgeFraction*DnD.MaxSpeed*dt. No dwell delay is applied; DnD.DelayMS
// is not read. edgeFraction=0 leaves the gesture untouched without
// ending it.
func (r *Row) DnDScrollGesture(now time.Time, edgeFraction float64, dt time.Duration) {
	if edgeFraction == 0 {
		return
	}
	v := edgeFraction * r.opts.DnD.MaxSpeed
	r.viewOffset.UpdateGesture(now, v*dt.Seconds())
}

// VerifyInvariants checks the Row invariants it can see locally; the
// at-most-one-concurrent-gesture rule is enforced by the owning Layout
// across all rows.
func (r *Row) VerifyInvariants() error {
	if len(r.columns) > 0 && r.active >= len(r.columns) {
		return rowError("active_column_idx out of range")
	}
	if r.workingArea.Min.X < r.parentArea.Min.X || r.workingArea.Min.Y < r.parentArea.Min.Y ||
		r.workingArea.Max.X > r.parentArea.Max.X || r.workingArea.Max.Y > r.parentArea.Max.Y {
		return rowError("working_area not contained in parent_area")
	}
	return nil
}

type rowError string

func (e rowError) Error() string { return string(e) }
