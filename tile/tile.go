// SPDX-License-Identifier: Unlicense OR MIT

// Package tile implements a window plus its visual
// chrome (border, focus ring, tab-indicator hit region) and its
// resize/move/close animations.
package tile

import (
	"time"

	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/handle"
	"github.com/wayscroll/wayscroll/internal/anim"
	"github.com/wayscroll/wayscroll/options"
	"github.com/wayscroll/wayscroll/render"
)

// HitType is the classification of a point hit-tested against a
// Tile.
type HitType uint8

const (
	HitNone HitType = iota
	HitInput
	HitActivate
)

// Hit is the result of Tile.Hit.
type Hit struct {
	Type         HitType
	WinPos       geom.Point // valid for HitInput
	IsTabIndicator bool     // valid for HitActivate
}

// ResizeClick records the time and edges of the last interactive
// resize start, used by double-right-click detection.
type ResizeClick struct {
	Time  time.Time
	Edges handle.Edges
	Valid bool
}

// Tile wraps a single mapped window with its chrome and animation state.
type Tile struct {
	id     handle.TileID
	window handle.Window
	opts   *options.Options

	windowSize geom.Size // window content size, border excluded
	border     float64

	// floatingPos is the normalized (x/W, y/H) position in [0,1]^2 used
	// while this tile lives in a Floating Space; nil while tiled.
	floatingPos *geom.Point
	// floatingWindowSize is the window size to restore to when a
	// fullscreened tile is un-fullscreened back into floating.
	floatingWindowSize *geom.Size

	isFullscreen bool
	isMaximized  bool
	viewSize     geom.Size // output view size, valid while fullscreen

	alpha       float64
	alphaAnim   anim.Value
	holdAfterDone bool

	renderOffsetX anim.Value
	renderOffsetY anim.Value
	resizeAnim    *resizeAnimState

	interactiveMoveOffset geom.Point
	inInteractiveMove     bool

	lastResizeClick ResizeClick

	snapshot       any // owned renderer texture handle, or nil
	unmapping      bool
}

type resizeAnimState struct {
	fromSize geom.Size
	toSize   geom.Size
	start    time.Time
	curve    anim.Curve
}

// New builds a Tile around window, sized to its initial committed
// size.
func New(window handle.Window, opts *options.Options, initialSize geom.Size) *Tile {
	return &Tile{
		id:         handle.NewTileID(),
		window:     window,
		opts:       opts,
		windowSize: initialSize,
		border:     opts.BorderWidth,
		alpha:      1,
		alphaAnim:  anim.NewStatic(1),
		renderOffsetX: anim.NewStatic(0),
		renderOffsetY: anim.NewStatic(0),
	}
}

func (t *Tile) ID() handle.TileID   { return t.id }
func (t *Tile) Window() handle.Window { return t.window }

// WindowSize returns the window's current content size (border
// excluded).
func (t *Tile) WindowSize() geom.Size {
	return t.windowSize
}

// TileSize returns the tile's visual size (window + border), or the
// view size if fullscreen.
func (t *Tile) TileSize() geom.Size {
	if t.isFullscreen {
		return t.viewSize
	}
	if t.resizeAnim != nil {
		return t.currentAnimatedSize()
	}
	return geom.Size{W: t.windowSize.W + 2*t.border, H: t.windowSize.H + 2*t.border}
}

func (t *Tile) currentAnimatedSize() geom.Size {
	ra := t.resizeAnim
	now := time.Now()
	p, done := ra.curve.Eval(now.Sub(ra.start))
	if done {
		t.resizeAnim = nil
		return ra.toSize
	}
	return geom.Size{
		W: geom.Lerp(ra.fromSize.W, ra.toSize.W, p),
		H: geom.Lerp(ra.fromSize.H, ra.toSize.H, p),
	}
}

// resizeAnimThreshold is the minimum size delta (px) below which
// RequestSize never starts a visual resize animation.
const resizeAnimThreshold = 10.0

// RequestSize requests a new window size. If animate and the size
// delta is at least resizeAnimThreshold, a resize animation
// interpolates the *visual* tile size while the window commits its
// new buffer; otherwise the tile jumps immediately once the client
// commits.
func (t *Tile) RequestSize(size geom.Size, fullscreen, animate bool) {
	from := geom.Size{W: t.windowSize.W + 2*t.border, H: t.windowSize.H + 2*t.border}
	to := geom.Size{W: size.W + 2*t.border, H: size.H + 2*t.border}
	delta := absf(to.W-from.W) + absf(to.H-from.H)
	t.window.RequestSize(size, fullscreen)
	if animate && delta >= resizeAnimThreshold {
		t.resizeAnim = &resizeAnimState{
			fromSize: from,
			toSize:   to,
			start:    time.Now(),
			curve:    anim.EaseOutCubic,
		}
	} else {
		t.resizeAnim = nil
	}
}

// CommitSize is called once the client has committed a buffer of the
// requested size; it updates WindowSize. It does not itself cancel an
// in-flight resize animation — the animation interpolates toward the
// already-known target size independent of when the buffer lands.
func (t *Tile) CommitSize(size geom.Size) {
	t.windowSize = size
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// SetFullscreen toggles fullscreen state and records viewSize when
// entering it. It does not record or restore floatingWindowSize; that
// is done through StoreFloatingWindowSize and FloatingWindowSize.
func (t *Tile) SetFullscreen(fullscreen bool, viewSize geom.Size) {
	t.isFullscreen = fullscreen
	if fullscreen {
		t.viewSize = viewSize
	}
}

func (t *Tile) IsFullscreen() bool { return t.isFullscreen }
func (t *Tile) IsMaximized() bool  { return t.isMaximized }
func (t *Tile) SetMaximized(m bool) { t.isMaximized = m }

// FloatingPos returns the tile's normalized floating position, if it
// is currently in the Floating Space.
func (t *Tile) FloatingPos() (geom.Point, bool) {
	if t.floatingPos == nil {
		return geom.Point{}, false
	}
	return *t.floatingPos, true
}

func (t *Tile) SetFloatingPos(p geom.Point) {
	t.floatingPos = &p
}

func (t *Tile) ClearFloatingPos() {
	t.floatingPos = nil
}

func (t *Tile) StoreFloatingWindowSize(size geom.Size) {
	t.floatingWindowSize = &size
}

func (t *Tile) FloatingWindowSize() (geom.Size, bool) {
	if t.floatingWindowSize == nil {
		return geom.Size{}, false
	}
	return *t.floatingWindowSize, true
}

// WindowLoc returns the tile's window-content top-left in tile-local
// space (i.e. offset by the border).
func (t *Tile) WindowLoc() geom.Point {
	return geom.Pt(t.border, t.border)
}

// RenderOffset is the sum of active move animations' current values,
// per the invariant `render_offset = sum(active move animations'
// current values)`.
func (t *Tile) RenderOffset(now time.Time) geom.Point {
	p := geom.Pt(t.renderOffsetX.Current(now), t.renderOffsetY.Current(now))
	if t.inInteractiveMove {
		p = p.Add(t.interactiveMoveOffset)
	}
	return p
}

// AnimateMoveFrom offsets render_offset by delta and animates it back
// toward zero along anim.EaseOutCubic; the configured window-movement
// duration is not read.
func (t *Tile) AnimateMoveFrom(delta geom.Point) {
	t.AnimateMoveXFrom(delta.X)
	t.AnimateMoveYFrom(delta.Y)
}

func (t *Tile) AnimateMoveXFrom(dx float64) {
	if dx == 0 {
		return
	}
	now := time.Now()
	cur := t.renderOffsetX.Current(now)
	t.renderOffsetX = anim.StartAnimation(cur+dx, 0, anim.EaseOutCubic, now)
}

func (t *Tile) AnimateMoveYFrom(dy float64) {
	if dy == 0 {
		return
	}
	now := time.Now()
	cur := t.renderOffsetY.Current(now)
	t.renderOffsetY = anim.StartAnimation(cur+dy, 0, anim.EaseOutCubic, now)
}

// StopMoveAnimations cancels any in-flight move animation, snapping
// render offset to zero. Used when a tile is extracted into an
// interactive move.
func (t *Tile) StopMoveAnimations() {
	t.renderOffsetX = anim.NewStatic(0)
	t.renderOffsetY = anim.NewStatic(0)
}

// SetInteractiveMoveOffset sets the temporary offset applied while a
// tile is being interactively dragged.
func (t *Tile) SetInteractiveMoveOffset(p geom.Point) {
	t.inInteractiveMove = true
	t.interactiveMoveOffset = p
}

func (t *Tile) ClearInteractiveMoveOffset() {
	t.inInteractiveMove = false
	t.interactiveMoveOffset = geom.Point{}
}

// Alpha returns the tile's current alpha.
func (t *Tile) Alpha(now time.Time) float64 {
	return t.alphaAnim.Current(now)
}

// AnimateAlpha starts an alpha animation from `from` to `to`. If
// holdAfterDone, the tile is kept at `to` rather than reverting —
// used when a scrolling-layout tile is interactively dragged, to stay
// semi-transparent until the grab ends.
func (t *Tile) AnimateAlpha(from, to float64, holdAfterDone bool) {
	now := time.Now()
	t.alphaAnim = anim.StartAnimation(from, to, anim.EaseOutCubic, now)
	t.holdAfterDone = holdAfterDone
}

func (t *Tile) HoldAfterDone() bool { return t.holdAfterDone }

// TakeUnmapSnapshot captures the tile's last rendered frame into an
// owned texture buffer, for use by a close animation; it is a no-op
// if a snapshot is already owned.
func (t *Tile) TakeUnmapSnapshot(r render.Renderer, dst geom.Rectangle) {
	if t.snapshot != nil {
		return
	}
	t.snapshot = r.CaptureSnapshot(dst)
}

// StoreUnmapSnapshotIfEmpty is an alias documenting the invariant
// that a snapshot is captured at most once.
func (t *Tile) StoreUnmapSnapshotIfEmpty(r render.Renderer, dst geom.Rectangle) {
	t.TakeUnmapSnapshot(r, dst)
}

// ReleaseSnapshot releases an owned snapshot texture, called once the
// close animation completes.
func (t *Tile) ReleaseSnapshot(r render.Renderer) {
	if t.snapshot == nil {
		return
	}
	r.ReleaseTexture(t.snapshot)
	t.snapshot = nil
}

func (t *Tile) HasSnapshot() bool { return t.snapshot != nil }

func (t *Tile) BeginUnmap() { t.unmapping = true }
func (t *Tile) IsUnmapping() bool { return t.unmapping }

// RecordInteractiveResizeStart records the (time, edges) of an
// interactive-resize start, for double-right-click detection.
func (t *Tile) RecordInteractiveResizeStart(at time.Time, edges handle.Edges) {
	t.lastResizeClick = ResizeClick{Time: at, Edges: edges, Valid: true}
}

func (t *Tile) LastInteractiveResizeStart() ResizeClick {
	return t.lastResizeClick
}

// Hit classifies a point in tile-local coordinates per : inside
// the window input region returns HitInput; on border/tab chrome
// returns HitActivate.
func (t *Tile) Hit(p geom.Point, tabIndicator geom.Rectangle, isTabbed bool) Hit {
	winRect := geom.Rectangle{
		Min: geom.Pt(t.border, t.border),
		Max: geom.Pt(t.border+t.windowSize.W, t.border+t.windowSize.H),
	}
	if !t.isFullscreen && winRect.Contains(p) {
		return Hit{Type: HitInput, WinPos: p.Sub(winRect.Min)}
	}
	if isTabbed && tabIndicator.Contains(p) {
		return Hit{Type: HitActivate, IsTabIndicator: true}
	}
	size := t.TileSize()
	if p.X >= 0 && p.X < size.W && p.Y >= 0 && p.Y < size.H {
		return Hit{Type: HitActivate}
	}
	return Hit{Type: HitNone}
}

// Render produces the ordered render elements for this tile: window
// buffer(s) with alpha, border, focus ring. It fills no Background
// element.
func (t *Tile) Render(pos geom.Point, focusRingOn bool, now time.Time) render.SplitElements {
	alpha := float32(t.Alpha(now))
	size := t.TileSize()
	dst := geom.Rectangle{Min: pos, Max: pos.Add(geom.Pt(size.W, size.H))}

	var out render.SplitElements
	if t.unmapping && t.snapshot != nil {
		out.Window = append(out.Window, render.Element{
			Kind: render.KindTexture, Dst: dst, Alpha: alpha, TextureHandle: t.snapshot,
		})
		return out
	}
	out.Window = append(out.Window, render.Element{
		Kind: render.KindSurface, Dst: dst.Sub(geom.Pt(0, 0)), Alpha: alpha,
	})
	if t.border > 0 && !t.isFullscreen {
		out.Border = append(out.Border, render.Element{
			Kind: render.KindSolidColor, Dst: dst, Color: render.RGBA{A: 1},
		})
	}
	if focusRingOn && !t.isFullscreen {
		out.FocusRing = append(out.FocusRing, render.Element{
			Kind: render.KindSolidColor, Dst: dst, Color: render.RGBA{R: 1, A: 1},
		})
	}
	return out
}

// VerifyInvariants checks the Tile invariants. It is called from
// debug builds only; release builds never call it on a user-input
// path.
func (t *Tile) VerifyInvariants() error {
	if t.windowSize.W <= 0 || t.windowSize.H <= 0 {
		if !t.unmapping {
			return errInvalidSize
		}
	}
	return nil
}

var errInvalidSize = tileError("window size must be positive when committed")

type tileError string

func (e tileError) Error() string { return string(e) }
