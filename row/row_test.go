// SPDX-License-Identifier: Unlicense OR MIT

package row

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wayscroll/wayscroll/column"
	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/handle"
	"github.com/wayscroll/wayscroll/options"
	"github.com/wayscroll/wayscroll/tile"
)

type fakeWindow struct{ id handle.WindowID }

func newFakeWindow() *fakeWindow                { return &fakeWindow{id: handle.NewWindowID()} }
func (w *fakeWindow) ID() handle.WindowID       { return w.id }
func (w *fakeWindow) RequestSize(geom.Size, bool) {}
func (w *fakeWindow) CommittedSize() geom.Size    { return geom.Size{} }
func (w *fakeWindow) OutputEnter(handle.OutputID) {}
func (w *fakeWindow) OutputLeave(handle.OutputID) {}
func (w *fakeWindow) SetIsFocused(bool)           {}
func (w *fakeWindow) SetInteractiveResize(handle.Edges, bool) {}
func (w *fakeWindow) Close()                      {}

func newTile(opts *options.Options) *tile.Tile {
	return tile.New(newFakeWindow(), opts, geom.Size{W: 400, H: 300})
}

func newColumnWithTile(opts *options.Options) *column.Column {
	c := column.New(opts, column.Width{Kind: column.WidthFixed, FixedPx: 400})
	c.InsertTile(0, newTile(opts), column.Height{Kind: column.HeightAuto, Weight: 1})
	return c
}

func newTestRow(opts *options.Options, nCols int) *Row {
	r := New(opts, geom.RectFromSize(geom.Pt(0, 0), geom.Size{W: 1280, H: 720}), geom.Size{W: 1280, H: 720}, 1)
	for i := 0; i < nCols; i++ {
		r.InsertColumn(i, newColumnWithTile(opts))
	}
	return r
}

// fullscreening the active tile of a non-tabbed multi-tile column
// expels it into its own column to the right before the flag is set;
// the original column is left untouched with its remaining tile.
func TestFSExpelsActiveTileFromNonTabbedMultiTileColumn(t *testing.T) {
	opts := options.Default()
	r := newTestRow(opts, 1)
	col := r.columns[0]
	col.InsertTile(1, newTile(opts), column.Height{Kind: column.HeightAuto, Weight: 1})
	require.Equal(t, column.ModeNormal, col.DisplayMode())
	require.Equal(t, 2, col.Len())

	r.SetFullscreenOnActive(true, geom.Size{W: 1920, H: 1080})

	require.Equal(t, 2, r.Len(), "expelling the active tile grows the row by one column")
	require.Equal(t, column.ModeNormal, col.DisplayMode(), "the source column is never switched to tabbed")
	require.Equal(t, 1, col.Len())

	expelled := r.columns[r.active]
	require.Equal(t, 1, expelled.Len())
	require.True(t, expelled.ActiveTile().IsFullscreen())

	r.SetFullscreenOnActive(false, geom.Size{})
	require.False(t, expelled.ActiveTile().IsFullscreen())
}

// a column already in Tabbed mode keeps all of its tiles together when
// one of them fullscreens, per Scenario Tabbed-fullscreen.
func TestFSStaysTogetherWhenColumnAlreadyTabbed(t *testing.T) {
	opts := options.Default()
	r := newTestRow(opts, 1)
	col := r.columns[0]
	col.InsertTile(1, newTile(opts), column.Height{Kind: column.HeightAuto, Weight: 1})
	col.InsertTile(2, newTile(opts), column.Height{Kind: column.HeightAuto, Weight: 1})
	col.SetDisplayMode(column.ModeTabbed)
	col.SetActiveIndex(1)

	r.SetFullscreenOnActive(true, geom.Size{W: 1920, H: 1080})

	require.Equal(t, 1, r.Len(), "tabbed columns never expel")
	require.Equal(t, 3, col.Len())
	require.True(t, col.ActiveTile().IsFullscreen())
}

// SetMaximizedOnActive follows the same expel-before-set rule as
// fullscreen.
func TestSetMaximizedOnActiveExpelsFromNonTabbedMultiTileColumn(t *testing.T) {
	opts := options.Default()
	r := newTestRow(opts, 1)
	col := r.columns[0]
	col.InsertTile(1, newTile(opts), column.Height{Kind: column.HeightAuto, Weight: 1})

	r.SetMaximizedOnActive(true)

	require.Equal(t, 2, r.Len())
	require.Equal(t, 1, col.Len())
	expelled := r.columns[r.active]
	require.True(t, expelled.ActiveTile().IsMaximized())
}

// with the active column holding
// a single tile, consuming left merges the previous column's tile into
// it; with more than one tile, it instead expels the active tile into
// a fresh column to the left.
func TestConsumeLeftMergesSingleTileColumns(t *testing.T) {
	opts := options.Default()
	r := newTestRow(opts, 2)
	r.active = 1

	r.ConsumeOrExpelWindowLeft()

	require.Equal(t, 1, r.Len())
	require.Equal(t, 2, r.columns[0].Len())
	require.Equal(t, 1, r.columns[0].ActiveIndex())
}

func TestConsumeLeftExpelsWhenActiveColumnHasMultipleTiles(t *testing.T) {
	opts := options.Default()
	r := newTestRow(opts, 2)
	r.active = 1
	r.columns[1].InsertTile(1, newTile(opts), column.Height{Kind: column.HeightAuto, Weight: 1})
	require.Equal(t, 2, r.columns[1].Len())

	r.ConsumeOrExpelWindowLeft()

	require.Equal(t, 3, r.Len())
	require.Equal(t, 1, r.columns[2].Len(), "the source column should have lost its active tile")
}

// extendToFurthestColumn stops at the furthest column that still fits
// entirely within the viewport, not at the array boundary: four 500px
// columns with a 20px gap in a 1280px working area, snapped to
// column 0's left edge, should extend only to column 1 (right edge
// 1020 <= 1280) and not column 2 (right edge 1540 > 1280).
func TestExtendToFurthestColumnStopsAtViewportEdgeMovingRight(t *testing.T) {
	opts := options.Default()
	opts.Gap = 20
	r := New(opts, geom.RectFromSize(geom.Pt(0, 0), geom.Size{W: 1280, H: 720}), geom.Size{W: 1280, H: 720}, 1)
	for i := 0; i < 4; i++ {
		c := column.New(opts, column.Width{Kind: column.WidthFixed, FixedPx: 500})
		c.InsertTile(0, newTile(opts), column.Height{Kind: column.HeightAuto, Weight: 1})
		r.InsertColumn(i, c)
	}

	best := snapPoint{offset: 0, colIdx: 0, left: true}
	extended := r.extendToFurthestColumn(best, true)

	require.Equal(t, 1, extended.colIdx)
}

// the leftward branch mirrors the rightward one: snapped to the
// rightmost column's right edge, extension stops at the furthest
// column whose left edge still falls within the viewport.
func TestExtendToFurthestColumnStopsAtViewportEdgeMovingLeft(t *testing.T) {
	opts := options.Default()
	opts.Gap = 20
	r := New(opts, geom.RectFromSize(geom.Pt(0, 0), geom.Size{W: 1280, H: 720}), geom.Size{W: 1280, H: 720}, 1)
	for i := 0; i < 4; i++ {
		c := column.New(opts, column.Width{Kind: column.WidthFixed, FixedPx: 500})
		c.InsertTile(0, newTile(opts), column.Height{Kind: column.HeightAuto, Weight: 1})
		r.InsertColumn(i, c)
	}

	// Column 3 spans x=[1560,2060]; align its right edge to the
	// viewport's right edge: offset = -(colX + colW - waW).
	best := snapPoint{offset: -(1560 + 500 - 1280), colIdx: 3, left: false}
	extended := r.extendToFurthestColumn(best, false)

	require.Equal(t, 2, extended.colIdx)
}

// ending a view-offset
// gesture snaps to the nearest column edge and activates that column.
func TestViewGestureEndsSnappedToNearestColumn(t *testing.T) {
	opts := options.Default()
	r := newTestRow(opts, 4)

	now := time.Now()
	r.BeginViewOffsetGesture(now, false)
	r.UpdateViewOffsetGesture(now.Add(10*time.Millisecond), -500, false)
	r.EndViewOffsetGesture(now.Add(20*time.Millisecond), false)

	require.False(t, r.viewOffset.IsGesture())
	later := now.Add(2 * time.Second)
	off := r.ViewOffset(later)

	snaps := r.computeSnaps()
	bestDist := absf(snaps[0].offset - off)
	for _, s := range snaps[1:] {
		require.GreaterOrEqual(t, absf(s.offset-off)+1e-6, 0.0)
		_ = bestDist
	}
	// The settled offset must exactly equal one of the computed snaps.
	matched := false
	for _, s := range snaps {
		if absf(s.offset-off) < 1e-6 {
			matched = true
			break
		}
	}
	require.True(t, matched)
}

// two right
// clicks on the same tile's left/right edge within the double-click
// window toggle full-width instead of resizing.
func TestDoubleRightClickTogglesFullWidth(t *testing.T) {
	opts := options.Default()
	r := newTestRow(opts, 1)
	col := r.columns[0]
	tl := col.ActiveTile()

	now := time.Now()
	require.True(t, r.BeginInteractiveResize(0, 0, handle.EdgeRight, now))

	second := now.Add(100 * time.Millisecond)
	action := CheckDoubleRightClick(tl, second, handle.EdgeRight)
	require.Equal(t, DoubleClickToggleFullWidth, action)

	tooLate := now.Add(time.Second)
	r.BeginInteractiveResize(0, 0, handle.EdgeRight, now)
	action = CheckDoubleRightClick(tl, tooLate, handle.EdgeRight)
	require.Equal(t, DoubleClickNone, action)
}

func TestInsertPositionAtPrefersNewColumnNearGap(t *testing.T) {
	opts := options.Default()
	r := newTestRow(opts, 2)

	// Column 0 spans [0, 400), column 1 spans [400+gap, ...). A point
	// right at the boundary should resolve to inserting a new column
	// between them rather than inside either.
	mid := r.columnX(0) + r.columnWidth(0) + opts.Gap/2
	pos := r.InsertPositionAt(geom.Pt(mid, 50), time.Now())
	require.Equal(t, InsertNewColumn, pos.Kind)
	require.Equal(t, 1, pos.ColumnIdx)
}

func TestTopEdgeResizeSuppressedOnTopmostTile(t *testing.T) {
	opts := options.Default()
	r := newTestRow(opts, 1)
	col := r.columns[0]
	col.InsertTile(1, newTile(opts), column.Height{Kind: column.HeightAuto, Weight: 1})

	ok := r.BeginInteractiveResize(0, 0, handle.EdgeTop, time.Now())
	require.False(t, ok, "top edge alone on the topmost tile must be suppressed")

	ok = r.BeginInteractiveResize(0, 0, handle.EdgeTop|handle.EdgeLeft, time.Now())
	require.True(t, ok, "left edge survives even though top is suppressed")
}

func TestRowVerifyInvariantsCatchesOutOfRangeActive(t *testing.T) {
	opts := options.Default()
	r := newTestRow(opts, 1)
	r.active = 5
	require.Error(t, r.VerifyInvariants())
}
