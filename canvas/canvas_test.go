// SPDX-License-Identifier: Unlicense OR MIT

package canvas

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/options"
)

func newTestCanvas() *Canvas {
	return New(options.Default(), geom.RectFromSize(geom.Pt(0, 0), geom.Size{W: 1280, H: 720}), geom.Size{W: 1280, H: 720}, 1)
}

func TestNewCanvasHasOriginRow(t *testing.T) {
	c := newTestCanvas()
	_, ok := c.Row(0)
	require.True(t, ok)
	require.NoError(t, c.VerifyInvariants())
}

func TestEnsureRowInsertsOnce(t *testing.T) {
	c := newTestCanvas()
	r1 := c.EnsureRow(3)
	r2 := c.EnsureRow(3)
	require.Same(t, r1, r2)
}

func TestSetNameRejectsCaseInsensitiveDuplicate(t *testing.T) {
	c := newTestCanvas()
	c.EnsureRow(1)
	require.NoError(t, c.SetName(0, "Work"))
	require.Error(t, c.SetName(1, "work"))
}

func TestMoveRowToIndexRoundTripIsIdentity(t *testing.T) {
	c := newTestCanvas()
	c.EnsureRow(1)
	c.EnsureRow(2)
	before := c.SortedKeys()
	require.NoError(t, c.SetName(0, "a"))
	require.NoError(t, c.SetName(1, "b"))
	require.NoError(t, c.SetName(2, "c"))

	namesBefore := namesInOrder(c, before)

	c.MoveRowToIndex(0, 2)
	c.MoveRowToIndex(2, 0)

	after := c.SortedKeys()
	namesAfter := namesInOrder(c, after)
	require.Equal(t, namesBefore, namesAfter)
}

func namesInOrder(c *Canvas, keys []int32) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = c.Name(k)
	}
	return out
}

func TestRefreshDropsEmptyUnnamedNonOriginRows(t *testing.T) {
	c := newTestCanvas()
	c.EnsureRow(1)
	c.Refresh()
	_, ok := c.Row(1)
	require.False(t, ok)

	_, ok = c.Row(0)
	require.True(t, ok, "origin row must survive refresh even if empty")
}

func TestFocusRowRejectsUnknownKey(t *testing.T) {
	c := newTestCanvas()
	require.False(t, c.FocusRow(99))
	require.True(t, c.FocusRow(0))
}
