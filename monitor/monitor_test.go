// SPDX-License-Identifier: Unlicense OR MIT

package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wayscroll/wayscroll/geom"
	"github.com/wayscroll/wayscroll/options"
)

type fakeOutput struct{ name string }

func (o *fakeOutput) Name() string            { return o.name }
func (o *fakeOutput) MakeModelSerial() string { return "" }
func (o *fakeOutput) Mode() (geom.Size, time.Duration) {
	return geom.Size{W: 1920, H: 1080}, 16666667 * time.Nanosecond
}
func (o *fakeOutput) Scale() float64          { return 1 }
func (o *fakeOutput) PhysicalSize() geom.Size { return geom.Size{W: 600, H: 340} }

func newTestMonitor() *Monitor {
	out := &fakeOutput{name: "DP-1"}
	return New(options.Default(), out, geom.RectFromSize(geom.Pt(0, 0), geom.Size{W: 1280, H: 720}), geom.Size{W: 1280, H: 720}, 1)
}

func TestOutputNameRoundTrips(t *testing.T) {
	m := newTestMonitor()
	require.Equal(t, "DP-1", m.OutputName())
}

func TestSwitchRowAnimatesToward(t *testing.T) {
	m := newTestMonitor()
	m.Canvas().EnsureRow(1)

	now := time.Now()
	require.True(t, m.SwitchRow(1, now))
	require.Equal(t, int32(1), m.ActiveRowIdx())

	later := now.Add(2 * time.Second)
	require.Equal(t, -m.rowHeight, m.SwitchOffset(later))
}

func TestSwitchRowRejectsUnknownKey(t *testing.T) {
	m := newTestMonitor()
	require.False(t, m.SwitchRow(7, time.Now()))
}

func TestRecordAndRestoreLastActiveRowID(t *testing.T) {
	m := newTestMonitor()
	m.Canvas().EnsureRow(2)
	m.Canvas().FocusRow(2)
	m.RecordLastActiveRowID()

	id, ok := m.LastActiveRowID()
	require.True(t, ok)
	require.Equal(t, int32(2), id)
}
