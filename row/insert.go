// SPDX-License-Identifier: Unlicense OR MIT

package row

import (
	"time"

	"github.com/wayscroll/wayscroll/column"
	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/handle"
	"github.com/wayscroll/wayscroll/tile"
)

// InsertPositionKind tags the InsertPosition variant.
type InsertPositionKind uint8

const (
	InsertNewColumn InsertPositionKind = iota
	InsertInColumn
)

// InsertPosition is result: either a new column at an index,
// or a tile index within an existing column.
type InsertPosition struct {
	Kind      InsertPositionKind
	ColumnIdx int
	TileIdx   int
}

// InsertPositionAt computes insert hint for a pointer inside
// the row's content area (row-content coordinates, i.e. already
// offset by -ViewOffset so x=0 is the row's left edge).
func (r *Row) InsertPositionAt(p geom.Point, now time.Time) InsertPosition {
	if len(r.columns) == 0 {
		return InsertPosition{Kind: InsertNewColumn, ColumnIdx: 0}
	}
	// Candidate inter-column gaps: before col 0, between each pair, and
	// after the last column.
	type gap struct {
		x   float64
		idx int
	}
	var gaps []gap
	gaps = append(gaps, gap{x: r.columnX(0) - r.opts.Gap/2, idx: 0})
	for i := 0; i < len(r.columns); i++ {
		gaps = append(gaps, gap{x: r.columnX(i) + r.columnWidth(i) + r.opts.Gap/2, idx: i + 1})
	}
	bestGap := gaps[0]
	bestGapDist := absf(gaps[0].x - p.X)
	for _, g := range gaps[1:] {
		if d := absf(g.x - p.X); d < bestGapDist {
			bestGap, bestGapDist = g, d
		}
	}

	// Find the column under the pointer, if any, to compare against
	// its intra-tile gaps.
	hitCol := -1
	for i := range r.columns {
		x0 := r.columnX(i)
		x1 := x0 + r.columnWidth(i)
		if p.X >= x0 && p.X < x1 {
			hitCol = i
			break
		}
	}
	if hitCol == -1 {
		return InsertPosition{Kind: InsertNewColumn, ColumnIdx: bestGap.idx}
	}

	col := r.columns[hitCol]
	tileGapY, tileIdx := r.closestTileGap(col, p.Y, now)
	tileGapDist := absf(tileGapY - p.Y)

	if bestGapDist <= tileGapDist {
		return InsertPosition{Kind: InsertNewColumn, ColumnIdx: bestGap.idx}
	}
	return InsertPosition{Kind: InsertInColumn, ColumnIdx: hitCol, TileIdx: tileIdx}
}

// closestTileGap finds the nearest intra-column tile gap to y. Tabbed
// columns only expose two gaps: above and below the visible tile.
func (r *Row) closestTileGap(col *column.Column, y float64, now time.Time) (gapY float64, tileIdx int) {
	if col.DisplayMode() == column.ModeTabbed {
		activeHeight := col.Height(r.workingArea.Dy())
		top, bottom := 0.0, activeHeight
		if absf(top-y) <= absf(bottom-y) {
			return top, col.ActiveIndex()
		}
		return bottom, col.ActiveIndex() + 1
	}
	tiles := col.Tiles()
	var cum float64
	best, bestIdx := cum, 0
	bestDist := absf(cum - y)
	for i, t := range tiles {
		cum += t.TileSize().H
		if d := absf(cum - y); d < bestDist {
			best, bestIdx, bestDist = cum, i+1, d
		}
	}
	return best, bestIdx
}

// ResizeEdges are the edges of the interactive resize grab.
type ResizeEdges = handle.Edges

// BeginInteractiveResize validates and records the start of an
// interactive resize: top-edge drag is suppressed for the topmost
// tile.
func (r *Row) BeginInteractiveResize(colIdx, tileIdx int, edges handle.Edges, at time.Time) bool {
	if colIdx < 0 || colIdx >= len(r.columns) {
		return false
	}
	col := r.columns[colIdx]
	if edges.Intersects(handle.EdgeTop) && tileIdx == 0 {
		edges &^= handle.EdgeTop
		if edges == 0 {
			return false
		}
	}
	tiles := col.Tiles()
	if tileIdx < 0 || tileIdx >= len(tiles) {
		return false
	}
	tiles[tileIdx].RecordInteractiveResizeStart(at, edges)
	return true
}

// UpdateInteractiveResize applies a requested (w,h) to the column: the
// left/right edges change the column's width, top/bottom edges change
// only the hit tile's height. On a centered layout, a
// left/right-edge drag doubles dx before this is called (the caller,
// which owns pointer delta, is responsible for that doubling).
func (r *Row) UpdateInteractiveResize(colIdx, tileIdx int, edges handle.Edges, w, h float64) {
	if colIdx < 0 || colIdx >= len(r.columns) {
		return
	}
	col := r.columns[colIdx]
	if edges.Intersects(handle.EdgeLeft | handle.EdgeRight) {
		col.SetWidth(column.Width{Kind: column.WidthFixed, FixedPx: w})
	}
	if edges.Intersects(handle.EdgeTop | handle.EdgeBottom) {
		tiles := col.Tiles()
		if tileIdx >= 0 && tileIdx < len(tiles) {
			tiles[tileIdx].RequestSize(geom.Size{W: tiles[tileIdx].WindowSize().W, H: h}, false, false)
		}
	}
}

// doubleClickWindow is DOUBLE_CLICK_TIME.
const doubleClickWindow = 400 * time.Millisecond

// DoubleRightClickAction is the result of checking a
// double-right-click gesture.
type DoubleRightClickAction uint8

const (
	DoubleClickNone DoubleRightClickAction = iota
	DoubleClickToggleFullWidth
	DoubleClickResetHeight
)

// CheckDoubleRightClick compares a new right-click's (time, edges)
// against the tile's last recorded resize start. Two right-clicks on
// the same tile within doubleClickWindow whose edge intersection
// contains LEFT|RIGHT toggle full-width; TOP|BOTTOM resets height.
func CheckDoubleRightClick(t *tile.Tile, now time.Time, edges handle.Edges) DoubleRightClickAction {
	last := t.LastInteractiveResizeStart()
	if !last.Valid || now.Sub(last.Time) > doubleClickWindow {
		return DoubleClickNone
	}
	inter := last.Edges & edges
	switch {
	case inter.Intersects(handle.EdgeLeft | handle.EdgeRight):
		return DoubleClickToggleFullWidth
	case inter.Intersects(handle.EdgeTop | handle.EdgeBottom):
		return DoubleClickResetHeight
	default:
		return DoubleClickNone
	}
}
