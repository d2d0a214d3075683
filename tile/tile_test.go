// SPDX-License-Identifier: Unlicense OR MIT

package tile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/handle"
	"github.com/wayscroll/wayscroll/options"
)

type fakeWindow struct {
	id       handle.WindowID
	lastSize geom.Size
}

func newFakeWindow() *fakeWindow { return &fakeWindow{id: handle.NewWindowID()} }

func (w *fakeWindow) ID() handle.WindowID { return w.id }
func (w *fakeWindow) RequestSize(size geom.Size, fullscreen bool) { w.lastSize = size }
func (w *fakeWindow) CommittedSize() geom.Size { return w.lastSize }
func (w *fakeWindow) OutputEnter(handle.OutputID) {}
func (w *fakeWindow) OutputLeave(handle.OutputID) {}
func (w *fakeWindow) SetIsFocused(bool)           {}
func (w *fakeWindow) SetInteractiveResize(handle.Edges, bool) {}
func (w *fakeWindow) Close()                      {}

func TestTileSizeIncludesBorder(t *testing.T) {
	opts := options.Default()
	tl := New(newFakeWindow(), opts, geom.Size{W: 800, H: 600})
	size := tl.TileSize()
	require.Equal(t, 800+2*opts.BorderWidth, size.W)
	require.Equal(t, 600+2*opts.BorderWidth, size.H)
}

func TestFullscreenTileSizeIsViewSize(t *testing.T) {
	opts := options.Default()
	tl := New(newFakeWindow(), opts, geom.Size{W: 800, H: 600})
	tl.SetFullscreen(true, geom.Size{W: 1920, H: 1080})
	require.Equal(t, geom.Size{W: 1920, H: 1080}, tl.TileSize())
	tl.SetFullscreen(false, geom.Size{})
	require.NotEqual(t, geom.Size{W: 1920, H: 1080}, tl.TileSize())
}

func TestHitClassifiesWindowVsChrome(t *testing.T) {
	opts := options.Default()
	tl := New(newFakeWindow(), opts, geom.Size{W: 100, H: 100})
	inside := tl.Hit(geom.Pt(opts.BorderWidth+5, opts.BorderWidth+5), geom.Rectangle{}, false)
	require.Equal(t, HitInput, inside.Type)

	onBorder := tl.Hit(geom.Pt(1, 1), geom.Rectangle{}, false)
	require.Equal(t, HitActivate, onBorder.Type)

	outside := tl.Hit(geom.Pt(-5, -5), geom.Rectangle{}, false)
	require.Equal(t, HitNone, outside.Type)
}

func TestAnimateMoveFromSetsNonzeroOffsetThenSettles(t *testing.T) {
	tl := New(newFakeWindow(), options.Default(), geom.Size{W: 100, H: 100})
	tl.AnimateMoveFrom(geom.Pt(50, 0))
	off := tl.RenderOffset(time.Now())
	require.NotEqual(t, 0.0, off.X)
	settled := tl.RenderOffset(time.Now().Add(2 * time.Second))
	require.Equal(t, 0.0, settled.X)
}

func TestAlphaHoldAfterDone(t *testing.T) {
	tl := New(newFakeWindow(), options.Default(), geom.Size{W: 100, H: 100})
	tl.AnimateAlpha(1, 0.75, true)
	require.True(t, tl.HoldAfterDone())
}
