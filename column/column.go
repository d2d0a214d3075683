// SPDX-License-Identifier: Unlicense OR MIT

// Package column implements a vertical stack of tiles
// sharing a width, with normal or tabbed display mode, and the
// fullscreen/maximize expel-on-set state machine.
package column

import (
	"time"

	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/options"
	"github.com/wayscroll/wayscroll/tile"
)

// WidthKind tags the ColumnWidth variant.
type WidthKind uint8

const (
	WidthPreset WidthKind = iota
	WidthFixed
)

// Width is the ColumnWidth variant.
type Width struct {
	Kind    WidthKind
	Preset  int
	FixedPx float64
}

// HeightKind tags the per-tile WindowHeight variant.
type HeightKind uint8

const (
	HeightAuto HeightKind = iota
	HeightFixed
	HeightPreset
)

// Height is the per-tile WindowHeight variant.
type Height struct {
	Kind   HeightKind
	Weight float64 // HeightAuto
	FixedPx float64 // HeightFixed
	Preset int      // HeightPreset
}

// DisplayMode is a column's display mode: Normal or Tabbed.
type DisplayMode uint8

const (
	ModeNormal DisplayMode = iota
	ModeTabbed
)

// entry pairs a tile with its height policy.
type entry struct {
	tile   *tile.Tile
	height Height
}

// Column is a vertical stack of tiles within a Row.
type Column struct {
	opts *options.Options

	entries []entry
	active  int

	width       Width
	isFullWidth bool
	mode        DisplayMode

	isPendingFullscreen bool
	isPendingMaximized  bool

	// preFullscreenWidth restores the column's width when
	// unfullscreening.
	preFullscreenWidth *Width
}

// New builds an empty column ready to receive its first tile.
func New(opts *options.Options, width Width) *Column {
	return &Column{opts: opts, width: width}
}

// Len reports the number of tiles.
func (c *Column) Len() int { return len(c.entries) }

// Tiles returns the tiles in order, top to bottom.
func (c *Column) Tiles() []*tile.Tile {
	out := make([]*tile.Tile, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.tile
	}
	return out
}

func (c *Column) ActiveIndex() int    { return c.active }
func (c *Column) ActiveTile() *tile.Tile {
	if len(c.entries) == 0 {
		return nil
	}
	return c.entries[c.active].tile
}

func (c *Column) SetActiveIndex(i int) {
	if i < 0 || i >= len(c.entries) {
		return
	}
	c.active = i
	if c.mode == ModeTabbed {
		c.updateTabbedAlphas()
	}
}

func (c *Column) Width() Width { return c.width }
func (c *Column) SetWidth(w Width) { c.width = w }
func (c *Column) IsFullWidth() bool { return c.isFullWidth }
func (c *Column) SetFullWidth(v bool) { c.isFullWidth = v }
func (c *Column) DisplayMode() DisplayMode { return c.mode }
func (c *Column) IsPendingFullscreen() bool { return c.isPendingFullscreen }
func (c *Column) IsPendingMaximized() bool  { return c.isPendingMaximized }

// InsertTile inserts t at index idx with the given height policy. If
// idx is out of [0, len], it is clamped. A tile added into a Tabbed
// column starts at alpha 0 unless it becomes the active tile.
func (c *Column) InsertTile(idx int, t *tile.Tile, h Height) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(c.entries) {
		idx = len(c.entries)
	}
	e := entry{tile: t, height: h}
	c.entries = append(c.entries, entry{})
	copy(c.entries[idx+1:], c.entries[idx:])
	c.entries[idx] = e
	if idx <= c.active {
		c.active++
	}
	if len(c.entries) == 1 {
		c.active = 0
	}
	c.normalizeSingleTileHeight()
	if c.mode == ModeTabbed {
		becomesActive := idx == c.active
		if !becomesActive {
			t.AnimateAlpha(1, 0, false)
		}
	}
}

// RemoveTile removes the tile at idx. If it was the last tile in the
// column, the column is left with zero tiles (callers are expected to
// then destroy the column). After removal, if exactly one tile
// remains, its height weight resets to 1.
func (c *Column) RemoveTile(idx int) {
	if idx < 0 || idx >= len(c.entries) {
		return
	}
	c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
	if c.active >= len(c.entries) {
		c.active = len(c.entries) - 1
	}
	if c.active < 0 {
		c.active = 0
	}
	c.normalizeSingleTileHeight()
}

func (c *Column) normalizeSingleTileHeight() {
	if len(c.entries) == 1 && c.entries[0].height.Kind == HeightAuto {
		c.entries[0].height.Weight = 1
	}
}

// IndexOf returns the index of t, or -1.
func (c *Column) IndexOf(t *tile.Tile) int {
	for i, e := range c.entries {
		if e.tile == t {
			return i
		}
	}
	return -1
}

// ResolveWidth resolves c.width against the row's preset list and
// available extent, per "Width resolution": a Preset resolves
// in tile- or window-units per the preset's Unit field, and the
// result is clamped to [1, +inf).
func (c *Column) ResolveWidth(rowWorkingWidth float64) float64 {
	switch c.width.Kind {
	case WidthFixed:
		px := c.width.FixedPx
		if px < 1 {
			px = 1
		}
		return px
	case WidthPreset:
		presets := c.opts.ColumnWidthPresets
		if c.width.Preset < 0 || c.width.Preset >= len(presets) {
			return rowWorkingWidth
		}
		return options.ResolvePreset(presets[c.width.Preset], rowWorkingWidth, 2*c.opts.BorderWidth)
	}
	return rowWorkingWidth
}

// resolveHeight resolves one tile's height policy against the
// available height and the sum of weights of all Auto tiles.
func (c *Column) resolveHeight(idx int, availableHeight float64, innerHeight float64) float64 {
	h := c.entries[idx].height
	switch h.Kind {
	case HeightFixed:
		return h.FixedPx
	case HeightPreset:
		presets := c.opts.WindowHeightPresets
		if h.Preset < 0 || h.Preset >= len(presets) {
			return innerHeight
		}
		return options.ResolvePreset(presets[h.Preset], innerHeight, 0)
	default: // HeightAuto
		var fixedTotal, weightTotal float64
		for _, e := range c.entries {
			switch e.height.Kind {
			case HeightFixed:
				fixedTotal += e.height.FixedPx
			case HeightPreset:
				// treated as consumed, approximate with innerHeight share
				fixedTotal += innerHeight / float64(len(c.entries))
			default:
				w := e.height.Weight
				if w <= 0 {
					w = 1
				}
				weightTotal += w
			}
		}
		leftover := availableHeight - fixedTotal
		if leftover < 0 {
			leftover = 0
		}
		w := h.Weight
		if w <= 0 {
			w = 1
		}
		if weightTotal == 0 {
			return leftover
		}
		return leftover * w / weightTotal
	}
}

// Height returns the column's total height: in Tabbed mode, the max
// tile height plus the tab-indicator extra size ( "Tabbed mode");
// otherwise the sum of resolved tile heights.
func (c *Column) Height(availableHeight float64) float64 {
	if c.mode == ModeTabbed {
		var max float64
		for i := range c.entries {
			h := c.resolveHeight(i, availableHeight, availableHeight)
			if h > max {
				max = h
			}
		}
		return max + c.opts.TabIndicatorSize
	}
	var total float64
	for i := range c.entries {
		total += c.resolveHeight(i, availableHeight, availableHeight)
	}
	return total
}

// SetDisplayMode transitions Normal<->Tabbed. Tabbed->Normal requires
// clearing fullscreen/maximized on the active tile if len > 1.
func (c *Column) SetDisplayMode(mode DisplayMode) {
	if mode == c.mode {
		return
	}
	if mode == ModeNormal && len(c.entries) > 1 {
		c.isPendingFullscreen = false
		c.isPendingMaximized = false
		if at := c.ActiveTile(); at != nil {
			at.SetFullscreen(false, geom.Size{})
		}
	}
	c.mode = mode
	if mode == ModeTabbed {
		c.updateTabbedAlphas()
	} else {
		for _, e := range c.entries {
			e.tile.AnimateAlpha(e.tile.Alpha(time.Now()), 1, false)
		}
	}
}

func (c *Column) updateTabbedAlphas() {
	for i, e := range c.entries {
		target := 0.0
		if i == c.active {
			target = 1
		}
		e.tile.AnimateAlpha(e.tile.Alpha(time.Now()), target, false)
	}
}

// VerifyInvariants checks the Column invariants it can see locally.
func (c *Column) VerifyInvariants() error {
	if len(c.entries) > 0 && c.active >= len(c.entries) {
		return errActiveOutOfRange
	}
	if len(c.entries) > 1 && c.mode != ModeTabbed {
		if c.isPendingFullscreen || c.isPendingMaximized {
			return errMultiTileFullscreen
		}
	}
	return nil
}

type columnError string

func (e columnError) Error() string { return string(e) }

var (
	errActiveOutOfRange    = columnError("active_tile_idx out of range")
	errMultiTileFullscreen = columnError("fullscreen/maximized column with >1 tile must be tabbed")
)
