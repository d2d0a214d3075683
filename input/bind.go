// SPDX-License-Identifier: Unlicense OR MIT

// Package input implements keyboard bind dispatch, pointer motion
// routing, interactive grabs, and keyboard focus arbitration, in the
// same accept-events-and-report-higher-level-actions style as a
// gesture recognizer: small state machines driven by a stream of
// low-level events rather than callbacks registered up front.
package input

import "time"

// Trigger identifies a physical key independent of keyboard layout.
type Trigger uint32

// Modifiers is a bitset of held modifier keys, including the
// COMPOSITOR pseudo-modifier that resolves to whatever key config
// names as the primary modifier (conventionally Super).
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModCompositor
)

// Bind is one configured keyboard shortcut.
type Bind struct {
	Trigger            Trigger
	Mods               Modifiers
	Action             string
	Repeat             bool
	Cooldown           time.Duration
	AllowWhenLocked    bool
	AllowInhibiting    bool
	HotkeyOverlayTitle string
}

// cooldownState tracks, per action, when its cooldown window expires.
type cooldownState struct {
	until map[string]time.Time
}

// BindTable resolves (trigger, mods) to a Bind and tracks suppressed
// keys and per-action cooldowns across calls to ShouldIntercept.
type BindTable struct {
	binds      []Bind
	suppressed map[Trigger]Bind
	cooldowns  cooldownState
}

// NewBindTable builds a table from a flat list of binds.
func NewBindTable(binds []Bind) *BindTable {
	return &BindTable{
		binds:      binds,
		suppressed: make(map[Trigger]Bind),
		cooldowns:  cooldownState{until: make(map[string]time.Time)},
	}
}

func (t *BindTable) find(trig Trigger, mods, modKey Modifiers) (Bind, bool) {
	resolved := mods
	for _, b := range t.binds {
		bm := b.Mods
		if bm&ModCompositor != 0 {
			bm = bm&^ModCompositor | modKey
		}
		if b.Trigger == trig && bm == resolved {
			return b, true
		}
	}
	return Bind{}, false
}

// Intercept is the result of ShouldIntercept.
type Intercept struct {
	// Forward means the event should pass through to the focused
	// client unmodified.
	Forward bool
	// Consume means the event is absorbed; Bind.Action is non-empty
	// only on the press that actually triggers an action (a consumed
	// release, or a press dropped by cooldown, carries no action).
	Consume bool
	Bind    Bind
}

// ShouldIntercept is the keyboard-dispatch decision function: given the
// current suppression set and config, decide whether a key event is
// forwarded to the client or consumed (and with which bound action, if
// any).
//
// allowedDuringScreenshot restricts matching to a reduced action set
// while a screenshot UI is open; pass nil when it is closed.
func (t *BindTable) ShouldIntercept(
	trig Trigger,
	modKey Modifiers,
	pressed bool,
	mods Modifiers,
	now time.Time,
	allowedDuringScreenshot map[string]bool,
	inhibitingShortcuts bool,
) Intercept {
	if !pressed {
		if _, wasSuppressed := t.suppressed[trig]; !wasSuppressed {
			return Intercept{Forward: true}
		}
		delete(t.suppressed, trig)
		return Intercept{Consume: true}
	}

	b, ok := t.find(trig, mods, modKey)
	if !ok {
		return Intercept{Forward: true}
	}
	if allowedDuringScreenshot != nil && !allowedDuringScreenshot[b.Action] {
		return Intercept{Forward: true}
	}
	if inhibitingShortcuts && b.AllowInhibiting {
		return Intercept{Forward: true}
	}

	t.suppressed[trig] = b
	if t.onCooldown(b, now) {
		return Intercept{Consume: true}
	}
	t.armCooldown(b, now)
	return Intercept{Consume: true, Bind: b}
}

func (t *BindTable) onCooldown(b Bind, now time.Time) bool {
	if b.Cooldown <= 0 {
		return false
	}
	until, ok := t.cooldowns.until[b.Action]
	return ok && now.Before(until)
}

func (t *BindTable) armCooldown(b Bind, now time.Time) {
	if b.Cooldown <= 0 {
		return
	}
	t.cooldowns.until[b.Action] = now.Add(b.Cooldown)
}
