// SPDX-License-Identifier: Unlicense OR MIT

package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEasingCurveEndpoints(t *testing.T) {
	c := EaseOutCubic
	p0, done0 := c.Eval(0)
	require.False(t, done0)
	require.InDelta(t, 0, p0, 1e-6)
	p1, done1 := c.Eval(c.Duration())
	require.True(t, done1)
	require.Equal(t, 1.0, p1)
}

func TestSpringSettles(t *testing.T) {
	s := SpringCurve{Stiffness: 200, Damping: 20}
	d := s.Duration()
	require.Greater(t, d, time.Duration(0))
	p, done := s.Eval(d)
	require.True(t, done)
	require.Equal(t, 1.0, p)
}

func TestDecelerationDecaysToStop(t *testing.T) {
	d := DecelerationCurve{InitialVelocity: 1000, Rate: 0.05}
	dur := d.Duration()
	require.Greater(t, dur, time.Duration(0))
	dist, done := d.Eval(dur)
	require.True(t, done)
	require.Greater(t, dist, 0.0)
}

func TestSwipeTrackerProjection(t *testing.T) {
	var tr SwipeTracker
	now := time.Now()
	tr.Reset()
	tr.AddSample(now, -10)
	tr.AddSample(now.Add(10*time.Millisecond), -10)
	tr.AddSample(now.Add(20*time.Millisecond), -10)
	require.Less(t, tr.Velocity(), 0.0)
	require.Less(t, tr.ProjectedEndPos(), tr.Pos())
}
