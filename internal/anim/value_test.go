// SPDX-License-Identifier: Unlicense OR MIT

package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStaticCurrentIsFixed(t *testing.T) {
	v := NewStatic(42)
	now := time.Now()
	require.Equal(t, 42.0, v.Current(now))
	require.Equal(t, 42.0, v.Target(now))
	require.True(t, v.IsStatic())
	require.False(t, v.IsAnimationOngoing(now))
}

func TestAnimationInterpolatesAndCompletes(t *testing.T) {
	start := time.Now()
	v := StartAnimation(0, 100, EasingCurve{X1: 0, Y1: 0, X2: 1, Y2: 1, DurationMS: 100}, start)
	require.True(t, v.IsAnimationOngoing(start))
	mid := v.Current(start.Add(50 * time.Millisecond))
	require.InDelta(t, 50, mid, 5)
	require.Equal(t, 100.0, v.Target(start))
	end := v.Current(start.Add(200 * time.Millisecond))
	require.Equal(t, 100.0, end)
	require.False(t, v.IsAnimationOngoing(start.Add(200*time.Millisecond)))
}

func TestGestureLifecycle(t *testing.T) {
	now := time.Now()
	v := NewStatic(10)
	v.BeginGesture(now, false)
	require.True(t, v.IsGesture())
	require.Equal(t, 10.0, v.Current(now))

	v.UpdateGesture(now.Add(10*time.Millisecond), -5)
	require.Equal(t, 5.0, v.Current(now.Add(10*time.Millisecond)))
	require.True(t, v.SawNonzeroDelta())

	v.EndGestureToSnap(now.Add(10*time.Millisecond), 0, EaseOutExpo)
	require.True(t, v.IsAnimationOngoing(now.Add(10*time.Millisecond)))
	final := v.Current(now.Add(10*time.Millisecond + EaseOutExpo.Duration()))
	require.Equal(t, 0.0, final)
}

func TestCancelGestureCollapsesToStatic(t *testing.T) {
	now := time.Now()
	v := NewStatic(0)
	v.BeginGesture(now, true)
	v.UpdateGesture(now, 7)
	v.CancelGesture(now)
	require.True(t, v.IsStatic())
	require.Equal(t, 7.0, v.Current(now))
}

func TestOffsetShiftsCurrentAndTarget(t *testing.T) {
	now := time.Now()
	v := NewStatic(10)
	v.Offset(now, 5)
	require.Equal(t, 15.0, v.Current(now))
	require.Equal(t, 15.0, v.Target(now))
}

func TestDnDGestureCollapsesWhenNeverNonzero(t *testing.T) {
	now := time.Now()
	v := NewStatic(0)
	v.BeginGesture(now, false)
	require.False(t, v.SawNonzeroDelta())
	v.CollapseToStatic(v.Current(now))
	require.True(t, v.IsStatic())
}
