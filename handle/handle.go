// SPDX-License-Identifier: Unlicense OR MIT

// Package handle defines the opaque handle traits through which the
// core consumes everything outside its own scope: Wayland
// surfaces/toplevels, the GLES renderer, and the session/TTY layer.
// Nothing in this package talks to a real compositor protocol stack;
// it is the seam the rest of the module is built against.
package handle

import (
	"time"

	"github.com/google/uuid"

	"github.com/wayscroll/wayscroll/geom"
)

// WindowID, OutputID and TileID are stable, comparable identities
// independent of Go pointer identity, needed because tiles migrate
// across rows/outputs and must remain valid map keys
// across that migration.
type WindowID uuid.UUID
type OutputID uuid.UUID
type TileID uuid.UUID

func NewWindowID() WindowID { return WindowID(uuid.New()) }
func NewOutputID() OutputID { return OutputID(uuid.New()) }
func NewTileID() TileID     { return TileID(uuid.New()) }

func (id WindowID) String() string { return uuid.UUID(id).String() }
func (id OutputID) String() string { return uuid.UUID(id).String() }
func (id TileID) String() string   { return uuid.UUID(id).String() }

// Edges is a bitset of resize/chrome edges, used by interactive
// resize and the double-click full-width/reset-height gesture.
type Edges uint8

const (
	EdgeLeft Edges = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Intersects reports whether e and o share any edge bit.
func (e Edges) Intersects(o Edges) bool { return e&o != 0 }

// Window is the opaque handle for a mapped Wayland toplevel. The
// surface-commit/buffer-import machinery behind it lives outside the
// core; the core only needs to request sizes, observe committed
// sizes, and report which output/row a window currently lives on.
type Window interface {
	ID() WindowID
	// RequestSize asks the client to commit a buffer of the given
	// size; the client may commit a different size back.
	RequestSize(size geom.Size, fullscreen bool)
	// CommittedSize returns the size of the most recently committed
	// buffer.
	CommittedSize() geom.Size
	// OutputEnter/OutputLeave notify the client's wl_surface of which
	// output(s) it is visible on; this is a weak back-reference, the
	// compositor remains authoritative, not the window.
	OutputEnter(OutputID)
	OutputLeave(OutputID)
	// SetIsFocused notifies the client of keyboard focus changes.
	SetIsFocused(bool)
	// SetInteractiveResize echoes back the edges of an in-progress
	// interactive resize so the client can report matching state.
	SetInteractiveResize(edges Edges, active bool)
	// Close requests client-initiated unmap (e.g. the close button or
	// a bound close action); it does not block on the client's
	// response.
	Close()
}

// Surface is a renderable client surface contributing to a Tile's
// render-element list. Only the subset of the Wayland surface tree
// the core needs to know about for throttling and damage purposes.
type Surface interface {
	// LastFrameCallbackSequence is the last output frame-callback
	// sequence number this surface has received a callback for,
	// implementing SurfaceFrameThrottlingState.
	LastFrameCallbackSequence() uint64
	SetLastFrameCallbackSequence(uint64)
}

// Output is the external handle for one monitor.
type Output interface {
	Name() string          // connector name, or deduplicated make/model/serial
	MakeModelSerial() string
	Mode() (size geom.Size, refresh time.Duration)
	Scale() float64
	PhysicalSize() geom.Size
}

// Session is the core's only access to the TTY/udev/libseat layer:
// open a DRM fd, switch VT, observe activity, and receive
// asynchronous pause/activate notifications.
type Session interface {
	Open(path string) (fd int, err error)
	ChangeVT(n int) error
	IsActive() bool
	// Events delivers Pause and Activate notifications asynchronously;
	// the core never blocks waiting on it.
	Events() <-chan SessionEvent
}

// SessionEvent is a Pause or Activate notification from Session.
type SessionEvent struct {
	Kind SessionEventKind
	// DeviceFD is populated for Activate events that also hand back a
	// refreshed DRM fd after a VT switch.
	DeviceFD int
}

type SessionEventKind uint8

const (
	SessionPause SessionEventKind = iota
	SessionActivate
)
