// SPDX-License-Identifier: Unlicense OR MIT

// Package kms is the DRM device manager: it holds per-device state
// (connector scan cache, mode selection, gamma LUT, atomic cleanup
// commits) behind a small set of interfaces standing in for the real
// ioctls, the same seam-over-external-resource pattern handle uses for
// Wayland surfaces and the GLES renderer.
package kms

// Mode is one display mode a connector advertises.
type Mode struct {
	Width, Height  int
	RefreshMilliHz int
	Preferred      bool
}

// PickMode chooses a mode for a connector given the configured
// target, in priority order: exact (w,h,refresh) match, then any mode
// at (w,h) with the highest refresh, then the connector's preferred
// mode, then the first advertised mode. fallbackUsed reports whether
// the configured target could not be matched exactly.
func PickMode(modes []Mode, want *Mode) (chosen Mode, fallbackUsed bool, ok bool) {
	if len(modes) == 0 {
		return Mode{}, false, false
	}
	if want != nil {
		for _, m := range modes {
			if m.Width == want.Width && m.Height == want.Height && m.RefreshMilliHz == want.RefreshMilliHz {
				return m, false, true
			}
		}
		best, found := Mode{}, false
		for _, m := range modes {
			if m.Width != want.Width || m.Height != want.Height {
				continue
			}
			if !found || m.RefreshMilliHz > best.RefreshMilliHz {
				best, found = m, true
			}
		}
		if found {
			return best, true, true
		}
	}
	for _, m := range modes {
		if m.Preferred {
			return m, true, true
		}
	}
	return modes[0], true, true
}
