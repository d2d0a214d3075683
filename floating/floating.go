// SPDX-License-Identifier: Unlicense OR MIT

// Package floating implements the Floating Space: an
// unordered set of free-positioned tiles addressed by a normalized
// (x/W, y/H) position, exempt from fullscreen and maximize.
package floating

import (
	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/options"
	"github.com/wayscroll/wayscroll/tile"
)

// member pairs a floating tile with its normalized position, kept
// alongside the tile (rather than solely in tile.floatingPos) so the
// space can iterate without re-deriving it from window size.
type member struct {
	tile *tile.Tile
	pos  geom.Point // normalized, (x/W, y/H) in [0,1]^2
}

// Space holds the free-positioned (non-tiled) windows.
type Space struct {
	opts    *options.Options
	members []member
}

// New builds an empty floating space.
func New(opts *options.Options) *Space {
	return &Space{opts: opts}
}

func (s *Space) Len() int { return len(s.members) }

// Tiles returns the floating tiles in no particular order.
func (s *Space) Tiles() []*tile.Tile {
	out := make([]*tile.Tile, len(s.members))
	for i, m := range s.members {
		out[i] = m.tile
	}
	return out
}

func (s *Space) indexOf(t *tile.Tile) int {
	for i, m := range s.members {
		if m.tile == t {
			return i
		}
	}
	return -1
}

// Add places t into the space at a normalized position. Fullscreen is
// cleared unconditionally: a tile that moves into the floating space
// always comes back as a normal window, never fullscreened.
func (s *Space) Add(t *tile.Tile, pos geom.Point) {
	if s.indexOf(t) >= 0 {
		return
	}
	t.SetFullscreen(false, geom.Size{})
	t.SetMaximized(false)
	t.SetFloatingPos(pos)
	s.members = append(s.members, member{tile: t, pos: pos})
}

// Remove takes t out of the space, e.g. when it is being tiled into a
// Row or interactively extracted into a move.
func (s *Space) Remove(t *tile.Tile) {
	idx := s.indexOf(t)
	if idx < 0 {
		return
	}
	t.ClearFloatingPos()
	s.members = append(s.members[:idx], s.members[idx+1:]...)
}

// Contains reports whether t is currently floating.
func (s *Space) Contains(t *tile.Tile) bool {
	return s.indexOf(t) >= 0
}

// SetPos repositions a floating tile, normalized to the given space
// size so subsequent resizes of the area preserve relative placement.
func (s *Space) SetPos(t *tile.Tile, pos geom.Point) {
	idx := s.indexOf(t)
	if idx < 0 {
		return
	}
	s.members[idx].pos = pos
	t.SetFloatingPos(pos)
}

// SetMaximized is a no-op for floating tiles: maximize is not honored
// here, per the "Floating tiles ... maximize is not honored"
// invariant. It exists so callers can route a generic maximize action
// through either space without a type switch on the result.
func (s *Space) SetMaximized(t *tile.Tile, _ bool) {
	if idx := s.indexOf(t); idx >= 0 {
		s.members[idx].tile.SetMaximized(false)
	}
}

// Resolve computes a tile's absolute placement rectangle within area,
// using its normalized position and its stored window size.
func (s *Space) Resolve(t *tile.Tile, area geom.Rectangle) geom.Rectangle {
	idx := s.indexOf(t)
	if idx < 0 {
		return geom.Rectangle{}
	}
	pos := s.members[idx].pos
	origin := geom.Pt(
		area.Min.X+pos.X*area.Dx(),
		area.Min.Y+pos.Y*area.Dy(),
	)
	return geom.RectFromSize(origin, t.TileSize())
}

// Hit returns the topmost (last-added, matching the render stacking
// order) floating tile whose resolved rectangle contains p, or nil.
func (s *Space) Hit(p geom.Point, area geom.Rectangle) *tile.Tile {
	for i := len(s.members) - 1; i >= 0; i-- {
		m := s.members[i]
		r := s.Resolve(m.tile, area)
		if r.Contains(p) {
			return m.tile
		}
	}
	return nil
}

// VerifyInvariants checks that no member is fullscreen: a floating
// tile never honors fullscreen or maximize.
func (s *Space) VerifyInvariants() error {
	for _, m := range s.members {
		if m.tile.IsFullscreen() {
			return floatingError("floating tile must not be fullscreen")
		}
	}
	return nil
}

type floatingError string

func (e floatingError) Error() string { return string(e) }
