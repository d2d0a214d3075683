// SPDX-License-Identifier: Unlicense OR MIT

// Package render defines the render-element protocol the core uses to
// talk to the GLES renderer, an external collaborator. Elements are a
// tagged sum of a finite variant set rather than an interface of
// heap-allocated trait objects: dispatch is by switching on Kind,
// keeping the hot render path allocation-free.
package render

import (
	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/handle"
)

// Kind tags which Element variant is populated.
type Kind uint8

const (
	KindSurface Kind = iota
	KindSolidColor
	KindTexture
	KindMemoryBuffer
)

// RGBA is a straight-alpha color used by solid-color and border/focus
// ring elements.
type RGBA struct{ R, G, B, A float32 }

// Element is one entry in a Tile's render output, or a Tile's
// contribution to an output's overall element list. Crop/rescale/
// relocate are modeled as fields on the element rather than wrapper
// variants, since every variant needs them identically for
// compositing into scanout planes.
type Element struct {
	Kind Kind

	// Geometry common to all kinds.
	Dst   geom.Rectangle // destination rectangle in output-local space
	Crop  geom.Rectangle // source crop, in source-local space; zero means "no crop"
	Alpha float32

	// KindSurface.
	Surface handle.Surface

	// KindSolidColor.
	Color RGBA

	// KindTexture / KindMemoryBuffer: an opaque renderer-owned buffer
	// handle, e.g. an unmap snapshot () or a border/focus-ring
	// buffer. The renderer interprets TextureHandle; the core never
	// dereferences it.
	TextureHandle any
}

// SplitElements is the ordered output of Tile.Render: background,
// window surface(s), border, then focus ring, in back-to-front
// compositing order.
type SplitElements struct {
	Background []Element
	Window     []Element
	Border     []Element
	FocusRing  []Element
}

// Flatten returns the elements in back-to-front paint order.
func (s SplitElements) Flatten() []Element {
	out := make([]Element, 0, len(s.Background)+len(s.Window)+len(s.Border)+len(s.FocusRing))
	out = append(out, s.Background...)
	out = append(out, s.Window...)
	out = append(out, s.Border...)
	out = append(out, s.FocusRing...)
	return out
}

// Renderer is the external GLES renderer collaborator: it accepts
// render elements and draws them, and exposes texture capture for
// unmap snapshots. The core never links a real GL context; production
// wiring and tests alike only depend on this interface.
type Renderer interface {
	// CaptureSnapshot captures the current contents behind dst into an
	// owned texture handle, used by Tile.TakeUnmapSnapshot.
	CaptureSnapshot(dst geom.Rectangle) any
	// ReleaseTexture releases a texture handle previously returned by
	// CaptureSnapshot.
	ReleaseTexture(any)
}
