// SPDX-License-Identifier: Unlicense OR MIT

// Package layout implements the Normal/NoOutputs
// Layout variant, the interactive-move state machine, DnD state, and
// cross-output window/row migration.
package layout

import (
	"time"

	"github.com/wayscroll/wayscroll/canvas"
	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/handle"
	"github.com/wayscroll/wayscroll/monitor"
	"github.com/wayscroll/wayscroll/options"
	"github.com/wayscroll/wayscroll/row"
	"github.com/wayscroll/wayscroll/tile"
)

// Layout is the top-level state: `Normal{monitors, ...}` or
// `NoOutputs{canvas}`.
type Layout struct {
	opts *options.Options

	monitors         []*monitor.Monitor
	primaryIdx       int
	activeMonitorIdx int

	// noOutputs is non-nil exactly when len(monitors) == 0, holding the
	// one canvas kept alive across a zero-output period.
	noOutputs *canvas.Canvas

	move *interactiveMove
	dnd  *dndState

	// lastActiveRowID restores per-output focus across reconnects.
	lastActiveRowID map[string]int32

	// outputIDs assigns a durable handle.OutputID to every handle.Output
	// this layout has ever seen, so cross-output move notifications
	// (output_leave/output_enter) report a real identity instead of a
	// placeholder.
	outputIDs map[handle.Output]handle.OutputID
}

// NewNoOutputs builds a Layout with zero monitors.
func NewNoOutputs(opts *options.Options) *Layout {
	return &Layout{
		opts:            opts,
		noOutputs:       canvas.New(opts, geom.Rectangle{}, geom.Size{}, 1),
		lastActiveRowID: make(map[string]int32),
		outputIDs:       make(map[handle.Output]handle.OutputID),
	}
}

// OutputID returns the durable identity assigned to output, assigning
// a fresh one on first sight (AddOutput already does this for
// connected outputs; the fallback here covers the degenerate case of
// an output referenced before it was ever added).
func (l *Layout) OutputID(output handle.Output) handle.OutputID {
	if id, ok := l.outputIDs[output]; ok {
		return id
	}
	id := handle.NewOutputID()
	l.outputIDs[output] = id
	return id
}

func (l *Layout) IsNoOutputs() bool { return len(l.monitors) == 0 }

func (l *Layout) Monitors() []*monitor.Monitor { return l.monitors }

func (l *Layout) PrimaryMonitor() *monitor.Monitor {
	if l.primaryIdx < 0 || l.primaryIdx >= len(l.monitors) {
		return nil
	}
	return l.monitors[l.primaryIdx]
}

func (l *Layout) ActiveMonitor() *monitor.Monitor {
	if l.activeMonitorIdx < 0 || l.activeMonitorIdx >= len(l.monitors) {
		return nil
	}
	return l.monitors[l.activeMonitorIdx]
}

func (l *Layout) SetActiveMonitor(idx int) bool {
	if idx < 0 || idx >= len(l.monitors) {
		return false
	}
	l.activeMonitorIdx = idx
	return true
}

// NoOutputsCanvas returns the zero-monitor canvas, or nil when
// monitors are connected.
func (l *Layout) NoOutputsCanvas() *canvas.Canvas { return l.noOutputs }

// AddOutput connects a new monitor, applying the original-output
// migration discipline: on the transition from NoOutputs, the held
// canvas becomes the new monitor's canvas directly; with monitors
// already present, rows whose original output matches the new
// monitor's name are pulled off their current monitor and reattached.
func (l *Layout) AddOutput(output handle.Output, parentArea geom.Rectangle, viewSize geom.Size, scale float64) *monitor.Monitor {
	name := output.Name()
	l.OutputID(output)
	var m *monitor.Monitor
	if l.IsNoOutputs() {
		m = monitor.NewWithCanvas(l.opts, output, l.noOutputs)
		l.noOutputs = nil
	} else {
		m = monitor.New(l.opts, output, parentArea, viewSize, scale)
		l.reattachRowsFor(name, m)
	}
	l.monitors = append(l.monitors, m)
	l.primaryIdx = 0
	l.activeMonitorIdx = len(l.monitors) - 1
	if key, ok := l.lastActiveRowID[name]; ok {
		m.Canvas().FocusRow(key)
	}
	return m
}

// reattachRowsFor moves every row across the other monitors whose
// recorded original output equals name into m's canvas, preserving
// their relative order.
func (l *Layout) reattachRowsFor(name string, m *monitor.Monitor) {
	for _, other := range l.monitors {
		keys := other.Canvas().SortedKeys()
		for _, k := range keys {
			if other.Canvas().OriginalOutput(k) != name {
				continue
			}
			r, ok := other.Canvas().Row(k)
			if !ok {
				continue
			}
			// The origin row (key 0) is never moved: every canvas must
			// keep its own.
			if k == 0 {
				continue
			}
			newKey := nextFreeKey(m.Canvas())
			dst := m.Canvas().EnsureRow(newKey)
			transplantRow(dst, r)
			m.Canvas().SetOriginalOutput(newKey, name)
			m.Canvas().SetName(newKey, other.Canvas().Name(k))
			other.Canvas().SetName(k, "")
		}
		other.Canvas().Refresh()
	}
}

// RemoveOutput disconnects the monitor bound to output. Its unnamed,
// empty rows are dropped; the rest migrate onto the (possibly
// reselected) primary monitor. If this was the last monitor, the
// canvas is kept alive as the NoOutputs canvas instead of discarded.
func (l *Layout) RemoveOutput(output handle.Output) {
	idx := l.indexOf(output)
	if idx < 0 {
		return
	}
	removed := l.monitors[idx]
	removed.RecordLastActiveRowID()
	if key, ok := removed.LastActiveRowID(); ok {
		l.lastActiveRowID[removed.OutputName()] = key
	}
	removed.Canvas().Refresh()

	l.monitors = append(l.monitors[:idx], l.monitors[idx+1:]...)

	if len(l.monitors) == 0 {
		l.noOutputs = removed.Canvas()
		l.primaryIdx = 0
		l.activeMonitorIdx = 0
		return
	}

	if l.primaryIdx >= len(l.monitors) {
		l.primaryIdx = 0
	}
	if l.activeMonitorIdx >= len(l.monitors) {
		l.activeMonitorIdx = l.primaryIdx
	}
	primary := l.monitors[l.primaryIdx]
	for _, k := range removed.Canvas().SortedKeys() {
		r, ok := removed.Canvas().Row(k)
		if !ok || (r.Len() == 0 && removed.Canvas().Name(k) == "") {
			continue
		}
		newKey := nextFreeKey(primary.Canvas())
		dst := primary.Canvas().EnsureRow(newKey)
		transplantRow(dst, r)
		primary.Canvas().SetOriginalOutput(newKey, removed.Canvas().OriginalOutput(k))
		primary.Canvas().SetName(newKey, removed.Canvas().Name(k))
	}
}

func (l *Layout) indexOf(output handle.Output) int {
	for i, m := range l.monitors {
		if m.Output() == output {
			return i
		}
	}
	return -1
}

// transplantRow moves every column from src onto dst, used when a row
// migrates from one monitor's canvas to another's.
func transplantRow(dst, src *row.Row) {
	dst.AdoptColumns(src.TakeColumns())
}

func nextFreeKey(c *canvas.Canvas) int32 {
	keys := c.SortedKeys()
	if len(keys) == 0 {
		return 1
	}
	return keys[len(keys)-1] + 1
}

// NoteWindowAddedToRow implements "creating a new window on a
// migrated row updates its original-output to the current monitor, so
// it won't migrate back".
func (l *Layout) NoteWindowAddedToRow(m *monitor.Monitor, rowKey int32) {
	m.Canvas().SetOriginalOutput(rowKey, m.OutputName())
}

// VerifyInvariants checks NoOutputs keeps the origin row and
// delegates to every monitor's canvas.
func (l *Layout) VerifyInvariants() error {
	if l.IsNoOutputs() {
		if _, ok := l.noOutputs.Row(0); !ok {
			return layoutError("NoOutputs canvas must keep the origin row")
		}
		return l.noOutputs.VerifyInvariants()
	}
	names := make(map[string]bool)
	for _, m := range l.monitors {
		if err := m.VerifyInvariants(); err != nil {
			return err
		}
		for _, k := range m.Canvas().SortedKeys() {
			name := m.Canvas().Name(k)
			if name == "" {
				continue
			}
			lower := caseFold(name)
			if names[lower] {
				return layoutError("duplicate row name across layout")
			}
			names[lower] = true
		}
	}
	return nil
}

func caseFold(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

type layoutError string

func (e layoutError) Error() string { return string(e) }

// interactiveMove and dndState hold the state that the interactive-move
// and drag-and-drop methods in move.go drive.
type interactiveMove struct {
	state  moveState
	tile   *tile.Tile
	output handle.Output

	delta geom.Point // accumulated while Starting

	pointerPosWithinOutput geom.Point
	pointerRatio           geom.Point
	width                  float64
	isFullWidth            bool
	isFloating             bool

	startedAt time.Time
}

type dndState struct {
	active bool
	over   handle.Output
}
