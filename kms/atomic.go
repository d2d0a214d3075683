// SPDX-License-Identifier: Unlicense OR MIT

package kms

// PlaneClear is one plane whose CRTC_ID and FB_ID should be cleared in
// an atomic commit.
type PlaneClear struct {
	PlaneID uint32
}

// CrtcDisable disables a CRTC: MODE_ID=0, ACTIVE=false, and its
// CRTC_ID cleared on the connector that feeds it.
type CrtcDisable struct {
	Connector ConnectorID
	CrtcID    uint32
}

// AtomicModeReq is one atomic commit built by BuildCleanupCommit.
type AtomicModeReq struct {
	ClearConnectorCrtc []ConnectorID
	ClearPlanes        []PlaneClear
	Disable            []CrtcDisable
	AllowModeset       bool
}

// ShouldDisable reports whether a connector should be turned off: it
// is absent from the currently-connected set, or it is a closed-lid
// laptop panel with an external monitor present and
// keep_laptop_panel_on_when_lid_is_closed not set.
func ShouldDisable(c Connector, connected map[ConnectorID]bool, externalPresent, keepPanelOnWhenLidClosed bool) bool {
	if !connected[c.ID] {
		return true
	}
	if c.LaptopPanel && c.LidClosed && externalPresent && !keepPanelOnWhenLidClosed {
		return true
	}
	return false
}

// BuildCleanupCommit assembles the device-added atomic commit: clear
// CRTC_ID on connectors that should be off, disable their CRTCs, and,
// when anything is disabled, request ALLOW_MODESET. It does not fill
// ClearPlanes: no plane's CRTC_ID or FB_ID is cleared.
//
// externalPresent is computed from connected; keepPanelOnWhenLidClosed
// is the device-wide policy input threaded through to ShouldDisable
// for the laptop-lid case.
func BuildCleanupCommit(dev *OutputDevice, connected map[ConnectorID]bool, keepPanelOnWhenLidClosed bool) AtomicModeReq {
	externalPresent := false
	for _, c := range dev.Connectors {
		if !c.LaptopPanel && connected[c.ID] {
			externalPresent = true
			break
		}
	}

	var req AtomicModeReq
	for id, c := range dev.Connectors {
		if !ShouldDisable(c, connected, externalPresent, keepPanelOnWhenLidClosed) {
			continue
		}
		req.ClearConnectorCrtc = append(req.ClearConnectorCrtc, id)
		if info, ok := dev.Crtcs[id]; ok {
			req.Disable = append(req.Disable, CrtcDisable{Connector: id, CrtcID: info.CrtcID})
		}
	}
	if len(req.ClearConnectorCrtc) > 0 {
		req.AllowModeset = true
	}
	return req
}
