// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/handle"
)

func TestShouldInterceptForwardsUnmatchedPress(t *testing.T) {
	table := NewBindTable(nil)
	r := table.ShouldIntercept(1, 0, true, ModShift, time.Now(), nil, false)
	require.True(t, r.Forward)
}

func TestShouldInterceptSuppressesAndConsumesRelease(t *testing.T) {
	binds := []Bind{{Trigger: 1, Mods: ModCompositor, Action: "close"}}
	table := NewBindTable(binds)
	now := time.Now()

	press := table.ShouldIntercept(1, ModAlt, true, ModAlt, now, nil, false)
	require.True(t, press.Consume)
	require.Equal(t, "close", press.Bind.Action)

	release := table.ShouldIntercept(1, ModAlt, false, 0, now, nil, false)
	require.True(t, release.Consume)
	require.Empty(t, release.Bind.Action, "a consumed release carries no action")

	forwardRelease := table.ShouldIntercept(1, ModAlt, false, 0, now, nil, false)
	require.True(t, forwardRelease.Forward, "a release for a key that wasn't suppressed forwards")
}

func TestShouldInterceptCooldownDropsRepeatButConsumesRelease(t *testing.T) {
	binds := []Bind{{Trigger: 2, Mods: ModCompositor, Action: "screenshot", Cooldown: time.Second}}
	table := NewBindTable(binds)
	now := time.Now()

	first := table.ShouldIntercept(2, ModAlt, true, ModAlt, now, nil, false)
	require.Equal(t, "screenshot", first.Bind.Action)

	table.ShouldIntercept(2, ModAlt, false, 0, now, nil, false)

	second := table.ShouldIntercept(2, ModAlt, true, ModAlt, now.Add(10*time.Millisecond), nil, false)
	require.True(t, second.Consume)
	require.Empty(t, second.Bind.Action, "still on cooldown, no action fires")

	third := table.ShouldIntercept(2, ModAlt, true, ModAlt, now.Add(2*time.Second), nil, false)
	require.Equal(t, "screenshot", third.Bind.Action, "cooldown has expired")
}

func TestShouldInterceptInhibitedShortcutForwardsWhenAllowed(t *testing.T) {
	binds := []Bind{{Trigger: 3, Mods: ModCompositor, Action: "toggle-fullscreen", AllowInhibiting: true}}
	table := NewBindTable(binds)

	r := table.ShouldIntercept(3, ModAlt, true, ModAlt, time.Now(), nil, true)
	require.True(t, r.Forward)
}

func TestShouldInterceptScreenshotUIRestrictsToAllowedActions(t *testing.T) {
	binds := []Bind{{Trigger: 4, Mods: ModCompositor, Action: "close-window"}}
	table := NewBindTable(binds)
	allowed := map[string]bool{"cancel-screenshot": true}

	r := table.ShouldIntercept(4, ModAlt, true, ModAlt, time.Now(), allowed, false)
	require.True(t, r.Forward, "an action not in the screenshot allow-list must forward")
}

type focusWindow struct {
	id      handle.WindowID
	focused bool
}

func newFocusWindow() *focusWindow { return &focusWindow{id: handle.NewWindowID()} }

func (w *focusWindow) ID() handle.WindowID                     { return w.id }
func (w *focusWindow) RequestSize(geom.Size, bool)             {}
func (w *focusWindow) CommittedSize() geom.Size                { return geom.Size{} }
func (w *focusWindow) OutputEnter(handle.OutputID)             {}
func (w *focusWindow) OutputLeave(handle.OutputID)             {}
func (w *focusWindow) SetIsFocused(v bool)                     { w.focused = v }
func (w *focusWindow) SetInteractiveResize(handle.Edges, bool) {}
func (w *focusWindow) Close()                                  {}

func TestResolveFocusPrecedence(t *testing.T) {
	layout := newFocusWindow()
	overlay := newFocusWindow()

	got := ResolveFocus(FocusCandidates{
		LayoutFocus:    layout,
		ExclusiveLayer: [4]handle.Window{overlay, nil, nil, nil},
	})
	require.Same(t, overlay, got, "an exclusive overlay layer surface beats layout focus")

	got = ResolveFocus(FocusCandidates{LayoutFocus: layout})
	require.Same(t, layout, got)
}

func TestResolveFocusOnDemandTopYieldsToFullscreenLayout(t *testing.T) {
	top := newFocusWindow()
	got := ResolveFocus(FocusCandidates{
		OnDemandLayerTop:      top,
		LayoutFullscreenAbove: true,
		LayoutFocus:           newFocusWindow(),
	})
	require.NotSame(t, top, got)
}

func TestFocusTrackerFiresSetIsFocusedOnChange(t *testing.T) {
	tracker := NewFocusTracker(200 * time.Millisecond)
	a := newFocusWindow()
	b := newFocusWindow()
	now := time.Now()

	tracker.Apply(FocusCandidates{LayoutFocus: a}, now)
	require.True(t, a.focused)

	tracker.Apply(FocusCandidates{LayoutFocus: b}, now.Add(time.Millisecond))
	require.False(t, a.focused)
	require.True(t, b.focused)
}

func TestFocusTrackerDebouncesMRUCommit(t *testing.T) {
	tracker := NewFocusTracker(200 * time.Millisecond)
	a := newFocusWindow()
	b := newFocusWindow()
	now := time.Now()

	commit := tracker.Apply(FocusCandidates{LayoutFocus: a}, now)
	require.Same(t, a, commit)

	tracker.Apply(FocusCandidates{LayoutFocus: b}, now.Add(10*time.Millisecond))
	commit = tracker.Apply(FocusCandidates{LayoutFocus: a}, now.Add(20*time.Millisecond))
	require.Nil(t, commit, "rapid alt-tabbing back to a must not re-commit within the debounce window")
}

func TestRouterMotionClipsToConfinedRegion(t *testing.T) {
	area := geom.RectFromSize(geom.Pt(0, 0), geom.Size{W: 1920, H: 1080})
	lookup := func(p geom.Point) (geom.Rectangle, bool) { return area, true }
	r := NewRouter(lookup, nil)

	res := r.Motion(geom.Pt(100, 100), geom.Point{})
	require.Equal(t, geom.Pt(100, 100), res.Pos)

	r.SetConstraint(Constraint{Kind: ConstraintConfined, Region: geom.RectFromSize(geom.Pt(0, 0), geom.Size{W: 50, H: 50})})
	res = r.Motion(geom.Pt(200, 200), geom.Point{})
	require.Equal(t, geom.Pt(50, 50), res.Pos)
}

func TestRouterMotionFallsBackToLastOutputWhenOffscreen(t *testing.T) {
	area := geom.RectFromSize(geom.Pt(0, 0), geom.Size{W: 800, H: 600})
	lookup := func(p geom.Point) (geom.Rectangle, bool) {
		if area.Contains(p) {
			return area, true
		}
		return geom.Rectangle{}, false
	}
	r := NewRouter(lookup, nil)

	r.Motion(geom.Pt(400, 300), geom.Point{})
	res := r.Motion(geom.Pt(10000, 10000), geom.Point{})
	require.Equal(t, geom.Pt(800, 600), res.Pos, "motion past every output clamps to the last known output")
}

func TestRouterMotionReportsHotCornerCrossing(t *testing.T) {
	area := geom.RectFromSize(geom.Pt(0, 0), geom.Size{W: 1920, H: 1080})
	lookup := func(p geom.Point) (geom.Rectangle, bool) { return area, true }
	corner := HotCorner{Region: geom.RectFromSize(geom.Pt(0, 0), geom.Size{W: 10, H: 10}), Action: "overview"}
	r := NewRouter(lookup, []HotCorner{corner})

	r.Motion(geom.Pt(500, 500), geom.Point{})
	res := r.Motion(geom.Pt(5, 5), geom.Point{})
	require.Equal(t, "overview", res.CrossedHotCorner)

	res = r.Motion(geom.Pt(6, 6), geom.Point{})
	require.Empty(t, res.CrossedHotCorner, "no new crossing while still inside the corner")
}
