// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"time"

	"github.com/wayscroll/wayscroll/column"
	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/handle"
	"github.com/wayscroll/wayscroll/row"
	"github.com/wayscroll/wayscroll/tile"
)

// moveState is the interactive-move state machine: Idle → Starting →
// Moving → Idle.
type moveState uint8

const (
	moveIdle moveState = iota
	moveStarting
	moveMoving
)

// extractionThresholdSq is the squared rubber-band distance
// (256px^2) past which Starting extracts the tile from its row into a
// free-floating Moving grab.
const extractionThresholdSq = 256 * 256

// rubberBandLimit caps how far the tile visually drags before
// extraction, expressed as a fraction of the raw delta (stiffness=1,
// limit=0.5).
const rubberBandLimit = 0.5

// MoveBegin starts an interactive move on t, captured at pos within
// output.
func (l *Layout) MoveBegin(t *tile.Tile, output handle.Output, pos geom.Point, now time.Time) {
	l.move = &interactiveMove{
		state:                  moveStarting,
		tile:                   t,
		output:                 output,
		pointerPosWithinOutput: pos,
		startedAt:              now,
	}
}

// MoveIsActive reports whether a move grab is in progress.
func (l *Layout) MoveIsActive() bool {
	return l.move != nil && l.move.state != moveIdle
}

// MoveState exposes the current phase for callers that need to branch
// on it (e.g. render ordering: a Moving tile renders last on its
// output).
func (l *Layout) MoveState() (tile *tile.Tile, starting, moving bool) {
	if l.move == nil {
		return nil, false, false
	}
	return l.move.tile, l.move.state == moveStarting, l.move.state == moveMoving
}

// rubberBand applies a stiffness=1, limit=0.5 rubber-band curve to a
// raw delta component.
func rubberBand(d float64) float64 {
	sign := 1.0
	if d < 0 {
		sign = -1
		d = -d
	}
	limited := d / (1 + d*rubberBandLimit/250)
	return sign * limited
}

// MoveUpdateStarting accumulates pointer delta while in the Starting
// phase, applying the rubber-band curve to the tile's render offset,
// and extracts the tile into a Moving grab once the accumulated
// squared delta crosses extractionThresholdSq.
//
// extractRow is the row currently hosting the tile (nil if it is
// floating); removeFromHost detaches the tile from wherever it
// currently lives (row column or floating space) before extraction.
func (l *Layout) MoveUpdateStarting(now time.Time, delta geom.Point, isFloating bool, removeFromHost func()) {
	m := l.move
	if m == nil || m.state != moveStarting {
		return
	}
	m.delta.X += delta.X
	m.delta.Y += delta.Y

	m.tile.AnimateMoveXFrom(rubberBand(m.delta.X) - m.tile.RenderOffset(now).X)
	m.tile.AnimateMoveYFrom(rubberBand(m.delta.Y) - m.tile.RenderOffset(now).Y)

	distSq := m.delta.X*m.delta.X + m.delta.Y*m.delta.Y
	if distSq < extractionThresholdSq || isFloating {
		return
	}

	if removeFromHost != nil {
		removeFromHost()
	}
	m.tile.StopMoveAnimations()
	m.tile.ClearInteractiveMoveOffset()
	m.isFloating = isFloating
	m.state = moveMoving
	m.tile.AnimateAlpha(1, 0.75, true)
}

// MoveUpdateMoving repositions the grabbed tile while Moving, updating
// which output it is considered over.
func (l *Layout) MoveUpdateMoving(pos geom.Point, output handle.Output) {
	m := l.move
	if m == nil || m.state != moveMoving {
		return
	}
	if m.output != output {
		m.tile.Window().OutputLeave(l.OutputID(m.output))
		m.tile.Window().OutputEnter(l.OutputID(output))
		m.output = output
	}
	m.pointerPosWithinOutput = pos
	m.tile.SetInteractiveMoveOffset(pos)
}

// MoveEnd finalizes the grab: a Starting grab cancels the rubber
// band with no extraction; a Moving grab inserts the tile into the
// row under the pointer at the given insert position. If insertRow is
// nil, the tile is not inserted anywhere; only its alpha animates back
// to 1.
func (l *Layout) MoveEnd(insertRow *row.Row, pos row.InsertPosition) {
	m := l.move
	if m == nil {
		return
	}
	defer func() { l.move = nil }()

	switch m.state {
	case moveStarting:
		m.tile.StopMoveAnimations()
	case moveMoving:
		m.tile.ClearInteractiveMoveOffset()
		if insertRow == nil {
			m.tile.AnimateAlpha(0.75, 1, false)
			return
		}
		switch pos.Kind {
		case row.InsertNewColumn:
			w := column.Width{Kind: column.WidthFixed, FixedPx: m.width}
			if m.isFullWidth {
				w = column.Width{Kind: column.WidthFixed, FixedPx: insertRow.WorkingArea().Dx()}
			}
			col := column.New(l.opts, w)
			col.SetFullWidth(m.isFullWidth)
			col.InsertTile(0, m.tile, column.Height{Kind: column.HeightAuto, Weight: 1})
			insertRow.InsertColumn(pos.ColumnIdx, col)
		case row.InsertInColumn:
			cols := insertRow.Columns()
			if pos.ColumnIdx >= 0 && pos.ColumnIdx < len(cols) {
				cols[pos.ColumnIdx].InsertTile(pos.TileIdx, m.tile, column.Height{Kind: column.HeightAuto, Weight: 1})
			}
		}
		m.tile.AnimateAlpha(0.75, 1, false)
	}
}

// BeginDnDScroll marks a drag-and-drop as currently hovering the
// scrolling zone of output, ahead of a dwell-then-scroll timer.
func (l *Layout) BeginDnDScroll(output handle.Output) {
	l.dnd = &dndState{active: true, over: output}
}

func (l *Layout) EndDnDScroll() {
	l.dnd = nil
}

func (l *Layout) DnDActive() bool {
	return l.dnd != nil && l.dnd.active
}
