// SPDX-License-Identifier: Unlicense OR MIT

package row

import (
	"github.com/wayscroll/wayscroll/column"
	"github.com/wayscroll/wayscroll/geom"
)

// ConsumeOrExpelWindowLeft implements / "consume the window
// to the left into the active column, or if the active column already
// has more than one tile, expel its active tile into a new column to
// the left" — the inverse operations bound to the same action so that
// it is always applicable.
func (r *Row) ConsumeOrExpelWindowLeft() {
	if r.active < 0 || r.active >= len(r.columns) {
		return
	}
	active := r.columns[r.active]
	if active.Len() > 1 {
		r.expelActiveTile(r.active, toLeft)
		return
	}
	if r.active == 0 {
		return
	}
	r.consumeColumn(r.active-1, r.active)
}

// ConsumeOrExpelWindowRight is ConsumeOrExpelWindowLeft's mirror.
func (r *Row) ConsumeOrExpelWindowRight() {
	if r.active < 0 || r.active >= len(r.columns) {
		return
	}
	active := r.columns[r.active]
	if active.Len() > 1 {
		r.expelActiveTile(r.active, toRight)
		return
	}
	if r.active == len(r.columns)-1 {
		return
	}
	r.consumeColumn(r.active+1, r.active)
}

type expelDirection uint8

const (
	toLeft expelDirection = iota
	toRight
)

// consumeColumn merges the single tile of the column at srcIdx into
// dstIdx's column as its new active tile, and removes the now-empty
// source column.
func (r *Row) consumeColumn(srcIdx, dstIdx int) {
	src := r.columns[srcIdx]
	if src.Len() == 0 {
		return
	}
	t := src.ActiveTile()
	src.RemoveTile(src.IndexOf(t))

	dst := r.columns[dstIdx]
	insertAt := dst.ActiveIndex() + 1
	dst.InsertTile(insertAt, t, column.Height{Kind: column.HeightAuto, Weight: 1})
	dst.SetActiveIndex(insertAt)

	if src.Len() == 0 {
		r.RemoveColumnAt(srcIdx)
	}
}

// expelActiveTile splits the active tile of the column at idx into a
// brand new column placed to its left or right.
func (r *Row) expelActiveTile(idx int, dir expelDirection) {
	col := r.columns[idx]
	t := col.ActiveTile()
	if t == nil {
		return
	}
	activeTileIdx := col.ActiveIndex()
	col.RemoveTile(activeTileIdx)

	newCol := column.New(r.opts, col.Width())
	newCol.InsertTile(0, t, column.Height{Kind: column.HeightAuto, Weight: 1})

	insertAt := idx
	if dir == toRight {
		insertAt = idx + 1
	}
	r.InsertColumn(insertAt, newCol)
	r.active = insertAt
}

// SetFullscreenOnActive applies the "Fullscreen/maximize" rule:
// entering fullscreen on a tile that shares a non-tabbed column with
// other tiles first expels it into its own column to the right, since
// a non-tabbed multi-tile column cannot carry a fullscreen member
// (column invariant, enforced by Column.VerifyInvariants). A column
// already in Tabbed mode keeps all of its tiles together instead.
func (r *Row) SetFullscreenOnActive(fullscreen bool, viewSize geom.Size) {
	if r.active < 0 || r.active >= len(r.columns) {
		return
	}
	col := r.columns[r.active]
	t := col.ActiveTile()
	if t == nil {
		return
	}
	if fullscreen && col.Len() > 1 && col.DisplayMode() != column.ModeTabbed {
		r.expelActiveTile(r.active, toRight)
		col = r.columns[r.active]
		t = col.ActiveTile()
	}
	t.SetFullscreen(fullscreen, viewSize)
}

// SetMaximizedOnActive mirrors SetFullscreenOnActive for maximize: a
// non-tabbed multi-tile column cannot carry a maximized member either,
// so the active tile is expelled into its own column first unless the
// column is already Tabbed.
func (r *Row) SetMaximizedOnActive(maximized bool) {
	if r.active < 0 || r.active >= len(r.columns) {
		return
	}
	col := r.columns[r.active]
	t := col.ActiveTile()
	if t == nil {
		return
	}
	if maximized && col.Len() > 1 && col.DisplayMode() != column.ModeTabbed {
		r.expelActiveTile(r.active, toRight)
		col = r.columns[r.active]
		t = col.ActiveTile()
	}
	t.SetMaximized(maximized)
}
