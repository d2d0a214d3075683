// SPDX-License-Identifier: Unlicense OR MIT

// Package monitor implements a Monitor: a Canvas
// bound to an Output handle, plus the vertical row-switch
// animation/gesture and the original-output migration discipline.
package monitor

import (
	"time"

	"github.com/wayscroll/wayscroll/canvas"
	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/handle"
	"github.com/wayscroll/wayscroll/internal/anim"
	"github.com/wayscroll/wayscroll/options"
)

// Monitor binds a Canvas to a physical output.
type Monitor struct {
	opts   *options.Options
	output handle.Output
	canvas *canvas.Canvas

	// switchOffset is the vertical camera analogue of Row.viewOffset:
	// an absolute vertical position, equal to -k*rowHeight when row key
	// k exactly fills the output.
	switchOffset   anim.Value
	fromKey, toKey int32
	rowHeight      float64

	lastActiveRowID *int32
}

// New binds a fresh Canvas to output.
func New(opts *options.Options, output handle.Output, parentArea geom.Rectangle, viewSize geom.Size, scale float64) *Monitor {
	return &Monitor{
		opts:         opts,
		output:       output,
		canvas:       canvas.New(opts, parentArea, viewSize, scale),
		switchOffset: anim.NewStatic(0),
		rowHeight:    viewSize.H,
	}
}

// NewWithCanvas binds output to an already-existing canvas, used by
// layout.AddOutput when transitioning from NoOutputs: the held canvas
// becomes the new monitor's canvas directly rather than being rebuilt.
func NewWithCanvas(opts *options.Options, output handle.Output, c *canvas.Canvas) *Monitor {
	return &Monitor{
		opts:         opts,
		output:       output,
		canvas:       c,
		switchOffset: anim.NewStatic(0),
	}
}

func (m *Monitor) Output() handle.Output   { return m.output }
func (m *Monitor) Canvas() *canvas.Canvas  { return m.canvas }
func (m *Monitor) OutputName() string      { return m.output.Name() }

// ActiveRowIdx reflects the switch animation's target, not its
// currently-rendered interpolated position.
func (m *Monitor) ActiveRowIdx() int32 {
	return m.toKey
}

// SwitchRow starts a row-switch animation from the currently active
// row to target, duration governed by animations.workspace_switch.
func (m *Monitor) SwitchRow(target int32, now time.Time) bool {
	if !m.canvas.FocusRow(target) {
		return false
	}
	m.fromKey = m.toKey
	m.toKey = target
	cur := m.switchOffset.Current(now)
	m.switchOffset = anim.StartAnimation(cur, -float64(target)*m.rowHeight, workspaceSwitchCurve(m.opts), now)
	return true
}

func workspaceSwitchCurve(opts *options.Options) anim.Curve {
	c := anim.EaseOutCubic
	c.DurationMS = opts.Animations.WorkspaceSwitchMS
	return c
}

// SwitchOffset returns the current vertical camera offset, -k*rowHeight
// when row key k exactly fills the output.
func (m *Monitor) SwitchOffset(now time.Time) float64 {
	return m.switchOffset.Current(now)
}

// BeginRowSwitchGesture seizes the switch offset into a touch/pad
// gesture, mirroring Row's view-offset gesture but on the vertical
// axis ( "either an animation or a touch/pad gesture").
func (m *Monitor) BeginRowSwitchGesture(now time.Time, isTouchpad bool) {
	m.switchOffset.BeginGesture(now, isTouchpad)
}

func (m *Monitor) UpdateRowSwitchGesture(now time.Time, delta float64) {
	m.switchOffset.UpdateGesture(now, delta)
}

// EndRowSwitchGesture snaps to the row key whose position lies closest
// to the gesture's projected end.
func (m *Monitor) EndRowSwitchGesture(now time.Time) {
	if !m.switchOffset.IsGesture() {
		return
	}
	if !m.switchOffset.SawNonzeroDelta() {
		m.switchOffset.CollapseToStatic(m.switchOffset.Current(now))
		return
	}
	projected := m.switchOffset.ProjectedEndPos()
	keys := m.canvas.SortedKeys()
	best := m.fromKey
	bestDist := absf(float64(m.fromKey) + projected/m.rowHeight)
	for _, k := range keys {
		if d := absf(float64(k) + projected/m.rowHeight); d < bestDist {
			best, bestDist = k, d
		}
	}
	m.SwitchRow(best, now)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// LastActiveRowID returns the row key this monitor had focused the
// last time it was connected, used by Layout to restore focus on
// reconnect (/ "Retains last_active_row_id per output name").
func (m *Monitor) LastActiveRowID() (int32, bool) {
	if m.lastActiveRowID == nil {
		return 0, false
	}
	return *m.lastActiveRowID, true
}

func (m *Monitor) RecordLastActiveRowID() {
	k := m.canvas.ActiveKey()
	m.lastActiveRowID = &k
}

// VerifyInvariants delegates to the embedded canvas.
func (m *Monitor) VerifyInvariants() error {
	return m.canvas.VerifyInvariants()
}
