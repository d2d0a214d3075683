// SPDX-License-Identifier: Unlicense OR MIT

// Package canvas implements the Canvas (2-D Workspace
// Set): an ordered map of Rows keyed by a signed integer (so rows
// inserted "above first" use negative keys), plus one Floating Space.
package canvas

import (
	"sort"
	"strings"

	"github.com/wayscroll/wayscroll/floating"
	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/options"
	"github.com/wayscroll/wayscroll/row"
)

// rowEntry pairs a Row with the metadata the ordered-map key alone
// doesn't carry: its optional unique name, whether it is the
// never-deleted origin row, and the output it was created on (the
// "original output", used by monitor/layout row migration).
type rowEntry struct {
	row            *row.Row
	name           string
	isOrigin       bool
	originalOutput string
}

// Canvas is the ordered collection of Rows making up one 2-D workspace.
type Canvas struct {
	opts *options.Options

	rows      map[int32]*rowEntry
	activeKey int32

	floatingSpace    *floating.Space
	floatingIsActive bool

	parentArea geom.Rectangle
	viewSize   geom.Size
	scale      float64
}

// New builds a canvas with its origin row (key 0) already present:
// a canvas always contains at least the origin row.
func New(opts *options.Options, parentArea geom.Rectangle, viewSize geom.Size, scale float64) *Canvas {
	c := &Canvas{
		opts:          opts,
		rows:          make(map[int32]*rowEntry),
		floatingSpace: floating.New(opts),
		parentArea:    parentArea,
		viewSize:      viewSize,
		scale:         scale,
	}
	c.rows[0] = &rowEntry{row: row.New(opts, parentArea, viewSize, scale), isOrigin: true}
	return c
}

// SortedKeys returns the row keys in ascending (BTreeMap) order.
func (c *Canvas) SortedKeys() []int32 {
	keys := make([]int32, 0, len(c.rows))
	for k := range c.rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// EnsureRow inserts an empty row at key if one is not already present.
func (c *Canvas) EnsureRow(key int32) *row.Row {
	if e, ok := c.rows[key]; ok {
		return e.row
	}
	e := &rowEntry{row: row.New(c.opts, c.parentArea, c.viewSize, c.scale)}
	c.rows[key] = e
	return e.row
}

// Row returns the row at key, if any.
func (c *Canvas) Row(key int32) (*row.Row, bool) {
	e, ok := c.rows[key]
	if !ok {
		return nil, false
	}
	return e.row, true
}

func (c *Canvas) ActiveKey() int32 { return c.activeKey }

func (c *Canvas) ActiveRow() *row.Row {
	e, ok := c.rows[c.activeKey]
	if !ok {
		return nil
	}
	return e.row
}

func (c *Canvas) FloatingSpace() *floating.Space { return c.floatingSpace }
func (c *Canvas) FloatingIsActive() bool         { return c.floatingIsActive }
func (c *Canvas) SetFloatingActive(v bool)       { c.floatingIsActive = v }

// FocusRow starts a row-switch to key.
// The actual switch *animation* (duration governed by
// animations.workspace_switch) is owned by the Monitor that embeds
// this canvas, since a Canvas alone has no notion of "current output
// view"; FocusRow here only updates which row is authoritative.
func (c *Canvas) FocusRow(key int32) bool {
	if _, ok := c.rows[key]; !ok {
		return false
	}
	c.activeKey = key
	c.floatingIsActive = false
	return true
}

// SetName assigns row key a name, enforcing unique, case
// insensitive, across the whole canvas. An empty name always
// succeeds (it un-names the row).
func (c *Canvas) SetName(key int32, name string) error {
	e, ok := c.rows[key]
	if !ok {
		return errUnknownRow
	}
	if name != "" {
		lower := strings.ToLower(name)
		for k, other := range c.rows {
			if k == key {
				continue
			}
			if other.name != "" && strings.ToLower(other.name) == lower {
				return errDuplicateName
			}
		}
	}
	e.name = name
	return nil
}

func (c *Canvas) Name(key int32) string {
	if e, ok := c.rows[key]; ok {
		return e.name
	}
	return ""
}

// RowByName looks up a row by case-insensitive name.
func (c *Canvas) RowByName(name string) (int32, bool) {
	lower := strings.ToLower(name)
	for k, e := range c.rows {
		if e.name != "" && strings.ToLower(e.name) == lower {
			return k, true
		}
	}
	return 0, false
}

// SetOriginalOutput records the output a row was created on, for the
// original-output migration discipline.
func (c *Canvas) SetOriginalOutput(key int32, outputName string) {
	if e, ok := c.rows[key]; ok {
		e.originalOutput = outputName
	}
}

func (c *Canvas) OriginalOutput(key int32) string {
	if e, ok := c.rows[key]; ok {
		return e.originalOutput
	}
	return ""
}

// MoveRowToIndex reorders the row currently at position i (in sorted
// key order) to position j, reassigning keys to preserve the ordered
// map's order around the pinned origin row. Calling it with (i,j)
// then (j,i) restores the original order.
func (c *Canvas) MoveRowToIndex(i, j int) {
	keys := c.SortedKeys()
	if i < 0 || i >= len(keys) || j < 0 || j >= len(keys) || i == j {
		return
	}
	moved := keys[i]
	keys = append(keys[:i], keys[i+1:]...)
	keys = append(keys, 0)
	copy(keys[j+1:], keys[j:])
	keys[j] = moved
	c.reindex(keys)
}

// reindex rebuilds c.rows with new sequential keys matching the order
// of orderedKeys, pinning whichever row is flagged isOrigin at key 0.
func (c *Canvas) reindex(orderedKeys []int32) {
	originPos := 0
	for i, k := range orderedKeys {
		if c.rows[k].isOrigin {
			originPos = i
			break
		}
	}
	newRows := make(map[int32]*rowEntry, len(orderedKeys))
	var newActive int32
	for i, k := range orderedKeys {
		newKey := int32(i - originPos)
		newRows[newKey] = c.rows[k]
		if k == c.activeKey {
			newActive = newKey
		}
	}
	c.rows = newRows
	c.activeKey = newActive
}

// Refresh destroys rows that are empty, unnamed, and not the origin
// row.
func (c *Canvas) Refresh() {
	for k, e := range c.rows {
		if e.isOrigin || e.name != "" {
			continue
		}
		if e.row.Len() == 0 {
			delete(c.rows, k)
			if c.activeKey == k {
				c.activeKey = 0
			}
		}
	}
}

// VerifyInvariants checks unique names and that the active row
// key is present in the map.
func (c *Canvas) VerifyInvariants() error {
	if _, ok := c.rows[c.activeKey]; !ok {
		return canvasError("active_row_key not present in rows")
	}
	seen := make(map[string]int32)
	for k, e := range c.rows {
		if e.name == "" {
			continue
		}
		lower := strings.ToLower(e.name)
		if other, dup := seen[lower]; dup && other != k {
			return canvasError("duplicate row name")
		}
		seen[lower] = k
	}
	return nil
}

type canvasError string

func (e canvasError) Error() string { return string(e) }

var (
	errUnknownRow    = canvasError("no row at that key")
	errDuplicateName = canvasError("row name already in use")
)
