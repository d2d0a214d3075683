// SPDX-License-Identifier: Unlicense OR MIT

// Package options holds the merged layout configuration consumed by
// tile, column, row, canvas and monitor. Configuration parsing itself
// is out of scope; this package only defines the shape that a config
// loader (external) would produce and the merge algorithm layout code
// calls lazily: per-output and per-row options are merged into a base
// Options struct on demand via WithMerged, which records the output
// scale but rescales no field.
// Options are passed around as a shared pointer (*Options) so cheap
// cloning matches a reference-counted config value.
package options

import "time"

// CenterFocusedColumn controls how the row camera follows column
// activation.
type CenterFocusedColumn uint8

const (
	CenterNever CenterFocusedColumn = iota
	CenterAlways
	CenterOnOverflow
)

// Animations bundles the named curves/durations used across the
// layout engine.
type Animations struct {
	WorkspaceSwitchMS int
	WindowMovementMS  int
	WindowResizeMS    int
	HorizontalViewMovementMS int
}

// DnDAutoScroll configures drag-and-drop auto-scroll.
type DnDAutoScroll struct {
	DelayMS  int
	MaxSpeed float64 // px/second at full deflection
}

// Options is the merged configuration a Tile/Column/
// Row/Canvas/Monitor reads from. It is never mutated in place once
// handed to a Tile; a config change produces a new Options value.
type Options struct {
	BorderWidth      float64
	FocusRingWidth   float64
	TabIndicatorSize float64
	Gap              float64

	// ColumnWidthPresets and WindowHeightPresets are given either in
	// tile-units (including border) or window-units (excluding
	// border), resolved by the preset Unit fields.
	ColumnWidthPresets []Preset
	WindowHeightPresets []Preset

	CenterFocusedColumn       CenterFocusedColumn
	AlwaysCenterSingleColumn  bool
	EmptyRowAboveFirst        bool

	Animations Animations
	DnD        DnDAutoScroll

	// Scale is the output scale passed to WithMerged. No other field is
	// divided or multiplied by it: geometry fields keep the values they
	// were given.
	Scale float64
}

// Unit distinguishes whether a Preset's value already includes the
// tile's border/chrome or excludes it.
type Unit uint8

const (
	UnitWindow Unit = iota
	UnitTile
)

// Preset is one entry of a column-width or window-height preset list.
type Preset struct {
	Unit Unit
	Px   float64 // absolute px when Fixed-like, else a proportion in (0,1]
	Proportion bool
}

// Default returns a reasonable baseline Options with every field set
// to a sane default, so tests don't need a config loader.
func Default() *Options {
	return &Options{
		BorderWidth:      4,
		FocusRingWidth:   4,
		TabIndicatorSize: 24,
		Gap:              16,
		ColumnWidthPresets: []Preset{
			{Unit: UnitTile, Proportion: true, Px: 1.0 / 3},
			{Unit: UnitTile, Proportion: true, Px: 0.5},
			{Unit: UnitTile, Proportion: true, Px: 2.0 / 3},
		},
		WindowHeightPresets: []Preset{
			{Unit: UnitTile, Proportion: true, Px: 1.0 / 3},
			{Unit: UnitTile, Proportion: true, Px: 0.5},
			{Unit: UnitTile, Proportion: true, Px: 2.0 / 3},
		},
		CenterFocusedColumn: CenterNever,
		Animations: Animations{
			WorkspaceSwitchMS:        300,
			WindowMovementMS:         250,
			WindowResizeMS:           250,
			HorizontalViewMovementMS: 250,
		},
		DnD: DnDAutoScroll{DelayMS: 100, MaxSpeed: 1500},
		Scale: 1,
	}
}

// WithMerged returns a copy of base with part's nonzero BorderWidth,
// FocusRingWidth and Gap, non-nil preset lists and non-Never
// CenterFocusedColumn applied on top, and Scale set to scale (1 when
// scale <= 0). All other fields, among them TabIndicatorSize,
// Animations and DnD, come from base, and no field is rescaled.
func (base *Options) WithMerged(part *Options, scale float64) *Options {
	merged := *base
	if part != nil {
		if part.BorderWidth != 0 {
			merged.BorderWidth = part.BorderWidth
		}
		if part.FocusRingWidth != 0 {
			merged.FocusRingWidth = part.FocusRingWidth
		}
		if part.Gap != 0 {
			merged.Gap = part.Gap
		}
		if part.ColumnWidthPresets != nil {
			merged.ColumnWidthPresets = part.ColumnWidthPresets
		}
		if part.WindowHeightPresets != nil {
			merged.WindowHeightPresets = part.WindowHeightPresets
		}
		if part.CenterFocusedColumn != CenterNever {
			merged.CenterFocusedColumn = part.CenterFocusedColumn
		}
	}
	if scale <= 0 {
		scale = 1
	}
	merged.Scale = scale
	return &merged
}

// MoveCurveDuration returns the configured window-movement duration.
func (o *Options) MoveCurveDuration() time.Duration {
	return time.Duration(o.Animations.WindowMovementMS) * time.Millisecond
}

// ResizeCurveDuration returns the configured window-resize duration.
func (o *Options) ResizeCurveDuration() time.Duration {
	return time.Duration(o.Animations.WindowResizeMS) * time.Millisecond
}

// ViewMovementDuration returns the configured horizontal camera move
// duration.
func (o *Options) ViewMovementDuration() time.Duration {
	return time.Duration(o.Animations.HorizontalViewMovementMS) * time.Millisecond
}

// WorkspaceSwitchDuration returns the configured row-switch duration.
func (o *Options) WorkspaceSwitchDuration() time.Duration {
	return time.Duration(o.Animations.WorkspaceSwitchMS) * time.Millisecond
}

// ResolvePreset resolves a preset against an available extent,
// clamping to [1, +inf).
func ResolvePreset(p Preset, available, border float64) float64 {
	var px float64
	if p.Proportion {
		px = available * p.Px
	} else {
		px = p.Px
	}
	if p.Unit == UnitWindow {
		px += border
	}
	if px < 1 {
		px = 1
	}
	return px
}
