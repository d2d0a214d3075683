// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"time"

	"github.com/wayscroll/wayscroll/handle"
)

// FocusCandidates is the set of surfaces competing for keyboard focus
// this loop iteration; nil fields mean that candidate is absent.
type FocusCandidates struct {
	ExitConfirmDialog handle.Window
	Locked            bool
	LockScreen        handle.Window
	ScreenshotUI      handle.Window
	MRUSwitcher       handle.Window
	PopupGrabRoot     handle.Window
	// ExclusiveLayer, in precedence order: overlay, top, bottom,
	// background.
	ExclusiveLayer [4]handle.Window
	// OnDemandLayerBottomBackground are on-demand layer surfaces that
	// win over layout focus unconditionally.
	OnDemandLayerBottomBackground handle.Window
	// OnDemandLayerTop only wins when no fullscreen layout window is
	// focus-eligible above it.
	OnDemandLayerTop      handle.Window
	LayoutFullscreenAbove bool
	LayoutFocus           handle.Window
}

// ResolveFocus walks the precedence list and returns the window that
// should hold keyboard focus this iteration, or nil for no focus.
func ResolveFocus(c FocusCandidates) handle.Window {
	if c.ExitConfirmDialog != nil {
		return c.ExitConfirmDialog
	}
	if c.Locked {
		return c.LockScreen
	}
	if c.ScreenshotUI != nil {
		return c.ScreenshotUI
	}
	if c.MRUSwitcher != nil {
		return c.MRUSwitcher
	}
	if c.PopupGrabRoot != nil {
		return c.PopupGrabRoot
	}
	for _, w := range c.ExclusiveLayer {
		if w != nil {
			return w
		}
	}
	if c.OnDemandLayerBottomBackground != nil {
		return c.OnDemandLayerBottomBackground
	}
	if c.OnDemandLayerTop != nil && !c.LayoutFullscreenAbove {
		return c.OnDemandLayerTop
	}
	return c.LayoutFocus
}

// FocusTracker applies ResolveFocus's result, firing SetIsFocused
// transitions and debouncing MRU timestamp commits so alt-tabbing
// through windows quickly doesn't record a spurious recency update for
// every intermediate window.
type FocusTracker struct {
	current    handle.Window
	debounce   time.Duration
	lastMRU    time.Time
	pendingMRU handle.Window
}

// NewFocusTracker builds a tracker with the given MRU debounce window.
func NewFocusTracker(debounce time.Duration) *FocusTracker {
	return &FocusTracker{debounce: debounce}
}

// Apply transitions focus to the resolved candidate at time now,
// firing SetIsFocused(false) on the old window and SetIsFocused(true)
// on the new one when they differ, and returns the window whose MRU
// timestamp should be committed now (nil if debounced).
func (f *FocusTracker) Apply(candidates FocusCandidates, now time.Time) (mruCommit handle.Window) {
	next := ResolveFocus(candidates)
	if next == f.current {
		return nil
	}
	if f.current != nil {
		f.current.SetIsFocused(false)
	}
	if next != nil {
		next.SetIsFocused(true)
	}
	f.current = next

	if next == nil {
		return nil
	}
	if now.Sub(f.lastMRU) < f.debounce {
		return nil
	}
	f.pendingMRU = next
	f.lastMRU = now
	return next
}

// Current returns the window currently holding focus, or nil.
func (f *FocusTracker) Current() handle.Window { return f.current }
