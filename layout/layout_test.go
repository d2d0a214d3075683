// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wayscroll/wayscroll/column"
	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/handle"
	"github.com/wayscroll/wayscroll/options"
	"github.com/wayscroll/wayscroll/row"
	"github.com/wayscroll/wayscroll/tile"
)

type fakeWindow struct {
	id      handle.WindowID
	entered []handle.OutputID
	left    []handle.OutputID
}

func newFakeWindow() *fakeWindow                  { return &fakeWindow{id: handle.NewWindowID()} }
func (w *fakeWindow) ID() handle.WindowID         { return w.id }
func (w *fakeWindow) RequestSize(geom.Size, bool) {}
func (w *fakeWindow) CommittedSize() geom.Size    { return geom.Size{} }
func (w *fakeWindow) OutputEnter(id handle.OutputID) {
	w.entered = append(w.entered, id)
}
func (w *fakeWindow) OutputLeave(id handle.OutputID) {
	w.left = append(w.left, id)
}
func (w *fakeWindow) SetIsFocused(bool)                       {}
func (w *fakeWindow) SetInteractiveResize(handle.Edges, bool) {}
func (w *fakeWindow) Close()                                  {}

type fakeOutput struct{ name string }

func (o *fakeOutput) Name() string            { return o.name }
func (o *fakeOutput) MakeModelSerial() string { return "" }
func (o *fakeOutput) Mode() (geom.Size, time.Duration) {
	return geom.Size{W: 1920, H: 1080}, 16666667 * time.Nanosecond
}
func (o *fakeOutput) Scale() float64          { return 1 }
func (o *fakeOutput) PhysicalSize() geom.Size { return geom.Size{W: 600, H: 340} }

func newTile(opts *options.Options) *tile.Tile {
	return tile.New(newFakeWindow(), opts, geom.Size{W: 400, H: 300})
}

func area() geom.Rectangle {
	return geom.RectFromSize(geom.Pt(0, 0), geom.Size{W: 1280, H: 720})
}

func TestNoOutputsCanvasSurvivesIntoFirstMonitor(t *testing.T) {
	opts := options.Default()
	l := NewNoOutputs(opts)
	require.True(t, l.IsNoOutputs())

	held := l.NoOutputsCanvas()
	held.EnsureRow(1)
	held.SetName(1, "scratch")

	out := &fakeOutput{name: "DP-1"}
	m := l.AddOutput(out, area(), geom.Size{W: 1280, H: 720}, 1)

	require.False(t, l.IsNoOutputs())
	require.Same(t, held, m.Canvas(), "the held canvas must become the new monitor's canvas directly")
	_, ok := m.Canvas().Row(1)
	require.True(t, ok, "rows created while there were no outputs must survive the transition")
}

func TestAddOutputReattachesRowsByOriginalOutput(t *testing.T) {
	opts := options.Default()
	l := NewNoOutputs(opts)

	first := l.AddOutput(&fakeOutput{name: "DP-1"}, area(), geom.Size{W: 1280, H: 720}, 1)

	key := nextFreeKey(first.Canvas())
	r := first.Canvas().EnsureRow(key)
	first.Canvas().SetName(key, "migrated")
	first.Canvas().SetOriginalOutput(key, "DP-2")
	col := column.New(opts, column.Width{Kind: column.WidthFixed, FixedPx: 400})
	col.InsertTile(0, newTile(opts), column.Height{Kind: column.HeightAuto, Weight: 1})
	r.InsertColumn(0, col)

	second := l.AddOutput(&fakeOutput{name: "DP-2"}, area(), geom.Size{W: 1280, H: 720}, 1)

	gotKey, ok := second.Canvas().RowByName("migrated")
	require.True(t, ok, "a row recorded as originating on DP-2 must reattach when DP-2 connects")
	gotRow, ok := second.Canvas().Row(gotKey)
	require.True(t, ok)
	require.Equal(t, 1, gotRow.Len())

	_, stillThere := first.Canvas().RowByName("migrated")
	require.False(t, stillThere, "the row must have left DP-1's canvas")
}

func TestRemoveLastOutputKeepsCanvasAsNoOutputs(t *testing.T) {
	opts := options.Default()
	l := NewNoOutputs(opts)
	out := &fakeOutput{name: "DP-1"}
	m := l.AddOutput(out, area(), geom.Size{W: 1280, H: 720}, 1)
	c := m.Canvas()

	l.RemoveOutput(out)

	require.True(t, l.IsNoOutputs())
	require.Same(t, c, l.NoOutputsCanvas())
}

func TestRemoveOutputMigratesNonEmptyRowsToPrimary(t *testing.T) {
	opts := options.Default()
	l := NewNoOutputs(opts)
	primary := l.AddOutput(&fakeOutput{name: "DP-1"}, area(), geom.Size{W: 1280, H: 720}, 1)
	secondOut := &fakeOutput{name: "DP-2"}
	second := l.AddOutput(secondOut, area(), geom.Size{W: 1280, H: 720}, 1)

	key := nextFreeKey(second.Canvas())
	r := second.Canvas().EnsureRow(key)
	second.Canvas().SetName(key, "workspace-x")
	col := column.New(opts, column.Width{Kind: column.WidthFixed, FixedPx: 400})
	col.InsertTile(0, newTile(opts), column.Height{Kind: column.HeightAuto, Weight: 1})
	r.InsertColumn(0, col)

	l.RemoveOutput(secondOut)

	gotKey, ok := primary.Canvas().RowByName("workspace-x")
	require.True(t, ok, "a non-empty row from the removed monitor must migrate to the primary")
	gotRow, _ := primary.Canvas().Row(gotKey)
	require.Equal(t, 1, gotRow.Len())
}

func TestMoveUpdateStartingExtractsPastThreshold(t *testing.T) {
	opts := options.Default()
	l := NewNoOutputs(opts)
	out := &fakeOutput{name: "DP-1"}
	tl := newTile(opts)
	now := time.Now()

	l.MoveBegin(tl, out, geom.Pt(0, 0), now)
	removed := false
	l.MoveUpdateStarting(now, geom.Pt(10, 0), false, func() { removed = true })

	_, starting, moving := l.MoveState()
	require.True(t, starting)
	require.False(t, moving)
	require.False(t, removed, "small deltas stay within the rubber band, no extraction yet")

	l.MoveUpdateStarting(now, geom.Pt(300, 0), false, func() { removed = true })
	_, starting, moving = l.MoveState()
	require.False(t, starting)
	require.True(t, moving)
	require.True(t, removed, "crossing the extraction threshold must detach the tile from its host")
}

func TestMoveUpdateMovingReportsRealOutputIdentity(t *testing.T) {
	opts := options.Default()
	l := NewNoOutputs(opts)
	outA := &fakeOutput{name: "DP-1"}
	outB := &fakeOutput{name: "DP-2"}
	l.AddOutput(outA, area(), geom.Size{W: 1280, H: 720}, 1)
	l.AddOutput(outB, area(), geom.Size{W: 1280, H: 720}, 1)

	win := newFakeWindow()
	tl := tile.New(win, opts, geom.Size{W: 400, H: 300})
	now := time.Now()

	l.MoveBegin(tl, outA, geom.Pt(0, 0), now)
	l.MoveUpdateStarting(now, geom.Pt(300, 0), false, func() {})

	l.MoveUpdateMoving(geom.Pt(10, 10), outB)

	require.Len(t, win.left, 1)
	require.Len(t, win.entered, 1)
	require.NotEqual(t, handle.OutputID{}, win.left[0], "output_leave must report a real identity, not the zero value")
	require.NotEqual(t, handle.OutputID{}, win.entered[0])
	require.Equal(t, l.OutputID(outA), win.left[0])
	require.Equal(t, l.OutputID(outB), win.entered[0])
	require.NotEqual(t, win.left[0], win.entered[0], "the two outputs must have distinct identities")

	// A second move to the same output is a no-op: no further
	// notifications, and the identity stays stable across calls.
	l.MoveUpdateMoving(geom.Pt(11, 11), outB)
	require.Len(t, win.left, 1)
	require.Len(t, win.entered, 1)
}

func TestMoveEndDuringStartingCancelsWithoutInsertion(t *testing.T) {
	opts := options.Default()
	l := NewNoOutputs(opts)
	out := &fakeOutput{name: "DP-1"}
	tl := newTile(opts)
	now := time.Now()

	l.MoveBegin(tl, out, geom.Pt(0, 0), now)
	l.MoveEnd(nil, row.InsertPosition{})

	require.False(t, l.MoveIsActive())
}

func TestVerifyInvariantsCatchesDuplicateRowNameAcrossMonitors(t *testing.T) {
	opts := options.Default()
	l := NewNoOutputs(opts)
	a := l.AddOutput(&fakeOutput{name: "DP-1"}, area(), geom.Size{W: 1280, H: 720}, 1)
	b := l.AddOutput(&fakeOutput{name: "DP-2"}, area(), geom.Size{W: 1280, H: 720}, 1)

	k1 := nextFreeKey(a.Canvas())
	a.Canvas().EnsureRow(k1)
	require.NoError(t, a.Canvas().SetName(k1, "Shared"))

	k2 := nextFreeKey(b.Canvas())
	b.Canvas().EnsureRow(k2)
	require.NoError(t, b.Canvas().SetName(k2, "shared"))

	require.Error(t, l.VerifyInvariants())
}
