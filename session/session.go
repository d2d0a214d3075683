// SPDX-License-Identifier: Unlicense OR MIT

// Package session coordinates the libseat/udev session handle with the
// DRM device manager: it drains handle.Session's Pause/Activate events
// and drives kms.Manager through the matching transition. It does not
// reopen devices or hand on new device fds after a VT switch.
package session

import (
	"github.com/wayscroll/wayscroll/handle"
	"github.com/wayscroll/wayscroll/internal/wlog"
)

// DeviceManager is the subset of kms.Manager's lifecycle this package
// drives; declared locally so session does not import kms just to call
// two methods.
type DeviceManager interface {
	Pause()
	Activate() (outputConfigChanged bool)
}

// Coordinator pumps handle.Session events into a DeviceManager.
type Coordinator struct {
	sess    handle.Session
	devices DeviceManager
	active  bool
}

// NewCoordinator builds a Coordinator. The caller drains events with
// Pump from the event loop's select/epoll dispatch; this type does not
// spawn its own goroutine.
func NewCoordinator(sess handle.Session, devices DeviceManager) *Coordinator {
	return &Coordinator{sess: sess, devices: devices, active: sess.IsActive()}
}

// Events exposes the underlying session's event channel so the event
// loop can register it as a source without this package owning the
// loop's scheduling.
func (c *Coordinator) Events() <-chan handle.SessionEvent { return c.sess.Events() }

// Pump processes one event drained from Events.
func (c *Coordinator) Pump(ev handle.SessionEvent) {
	switch ev.Kind {
	case handle.SessionPause:
		if c.active {
			c.active = false
			c.devices.Pause()
		}
	case handle.SessionActivate:
		if !c.active {
			c.active = true
			c.devices.Activate()
		}
	}
}

// ChangeVT requests a VT switch, guarded so a paused session doesn't
// issue a second switch while one is already in flight.
func (c *Coordinator) ChangeVT(n int) error {
	if !c.active {
		wlog.SessionRace("change-vt")
		return nil
	}
	return c.sess.ChangeVT(n)
}

// IsActive reports whether the session currently owns the display.
func (c *Coordinator) IsActive() bool { return c.active }
