// SPDX-License-Identifier: Unlicense OR MIT

package kms

import "github.com/wayscroll/wayscroll/internal/wlog"

// Pause defers all DRM operations until Activate: rescans, gamma
// changes, and atomic commits are all stashed or skipped rather than
// issued against a VT the session no longer owns.
func (m *Manager) Pause() {
	m.paused = true
}

// Activate resumes after a VT switch back: refresh connector lists,
// reapply gamma, bring up any devices added while paused, and flush
// the deferred-config flags raised during Pause.
func (m *Manager) Activate() (outputConfigChanged bool) {
	wasPaused := m.paused
	m.paused = false
	if !wasPaused {
		return false
	}
	for _, dev := range m.devices {
		if err := m.rescan(dev); err != nil {
			wlog.DRMTransient(string(dev.Node), err)
			continue
		}
		m.applyPendingGamma(dev)
	}
	changed := m.updateOutputConfigOnResume
	m.updateOutputConfigOnResume = false
	m.updateIgnoredNodesOnResume = false
	return changed
}

// MarkConfigDirty records that the output config (or ignored-node set)
// changed while paused, so Activate knows to reapply it on resume.
func (m *Manager) MarkConfigDirty(ignoredNodes bool) {
	if !m.paused {
		return
	}
	m.updateOutputConfigOnResume = true
	if ignoredNodes {
		m.updateIgnoredNodesOnResume = true
	}
}

// IsPaused reports whether DRM operations are currently deferred.
func (m *Manager) IsPaused() bool { return m.paused }

// GuardDRMOp drops a DRM operation attempted while paused instead of
// blocking or racing the VT switch, logging it for diagnostics.
func (m *Manager) GuardDRMOp(op string) (allowed bool) {
	if m.paused {
		wlog.SessionRace(op)
		return false
	}
	return true
}
