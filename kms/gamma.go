// SPDX-License-Identifier: Unlicense OR MIT

package kms

// SetGamma encodes lut (a flat 3×N table, or nil to reset to linear)
// into a CRTC gamma blob and applies it. When the session is paused,
// the ramp is stashed in pendingGamma and applied by Activate instead.
func (m *Manager) SetGamma(node DrmNode, c ConnectorID, lut []uint16) error {
	dev, ok := m.devices[node]
	if !ok {
		return errUnknownDevice
	}
	if m.paused {
		dev.pendingGamma[c] = lut
		return nil
	}
	blobID, err := m.backend.SetGammaLUT(node, c, lut)
	if err != nil {
		return err
	}
	info := dev.Crtcs[c]
	info.GammaBlobID = blobID
	dev.Crtcs[c] = info
	return nil
}

// applyPendingGamma flushes any gamma ramp queued while paused,
// called from Activate.
func (m *Manager) applyPendingGamma(dev *OutputDevice) {
	for c, lut := range dev.pendingGamma {
		if _, err := m.backend.SetGammaLUT(dev.Node, c, lut); err == nil {
			delete(dev.pendingGamma, c)
		}
	}
}

var errUnknownDevice = managerError("unknown DRM device")
