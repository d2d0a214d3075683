// SPDX-License-Identifier: Unlicense OR MIT

package loop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestRunOnceDispatchesRegisteredSource(t *testing.T) {
	l, err := New()
	require.NoError(t, err)
	defer l.Close()

	r, w, err := unixPipe()
	require.NoError(t, err)
	defer unix.Close(r)
	defer unix.Close(w)

	fired := false
	require.NoError(t, l.Register(Source{
		Name:  "pipe",
		Fd:    r,
		Class: ClassInput,
		Dispatch: func() {
			var buf [1]byte
			unix.Read(r, buf[:])
			fired = true
		},
	}))

	_, err = unix.Write(w, []byte{1})
	require.NoError(t, err)

	n, err := l.RunOnce(time.Second, nil)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.True(t, fired)
}

func TestRunOnceCallsRenderOnlyWhenSomethingFired(t *testing.T) {
	l, err := New()
	require.NoError(t, err)
	defer l.Close()

	rendered := 0
	n, err := l.RunOnce(10*time.Millisecond, func() { rendered++ })
	require.NoError(t, err)
	require.Equal(t, 0, n)
	require.Equal(t, 0, rendered, "a timeout with nothing ready must not render")

	l.RequestWakeup()
	n, err = l.RunOnce(time.Second, func() { rendered++ })
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, 1, rendered)
}

func TestInputSourcesDispatchBeforeRenderSources(t *testing.T) {
	l, err := New()
	require.NoError(t, err)
	defer l.Close()

	r1, w1, _ := unixPipe()
	r2, w2, _ := unixPipe()
	defer unix.Close(r1)
	defer unix.Close(w1)
	defer unix.Close(r2)
	defer unix.Close(w2)

	var order []string
	require.NoError(t, l.Register(Source{
		Name: "drm", Fd: r2, Class: ClassRender,
		Dispatch: func() {
			var buf [1]byte
			unix.Read(r2, buf[:])
			order = append(order, "render")
		},
	}))
	require.NoError(t, l.Register(Source{
		Name: "client", Fd: r1, Class: ClassInput,
		Dispatch: func() {
			var buf [1]byte
			unix.Read(r1, buf[:])
			order = append(order, "input")
		},
	}))

	unix.Write(w2, []byte{1})
	unix.Write(w1, []byte{1})

	_, err = l.RunOnce(time.Second, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"input", "render"}, order, "input sources must dispatch before render sources regardless of registration or readiness order")
}

func TestArmTimerFiresAndUnregisters(t *testing.T) {
	l, err := New()
	require.NoError(t, err)
	defer l.Close()

	fired := make(chan struct{}, 1)
	tok, err := l.ArmTimer(5*time.Millisecond, "test-timer", func() {
		fired <- struct{}{}
	})
	require.NoError(t, err)

	_, err = l.RunOnce(time.Second, nil)
	require.NoError(t, err)

	select {
	case <-fired:
	default:
		t.Fatal("timer did not fire within one RunOnce")
	}
	_, registered := l.sources[tok.fd]
	require.False(t, registered, "a fired timer must unregister itself")
}

func TestCancelTimerPreventsFiring(t *testing.T) {
	l, err := New()
	require.NoError(t, err)
	defer l.Close()

	fired := false
	tok, err := l.ArmTimer(50*time.Millisecond, "cancel-me", func() { fired = true })
	require.NoError(t, err)
	require.NoError(t, l.CancelTimer(tok))

	_, err = l.RunOnce(20*time.Millisecond, nil)
	require.NoError(t, err)
	require.False(t, fired)
}

func unixPipe() (r, w int, err error) {
	fds := make([]int, 2)
	if err := unix.Pipe(fds); err != nil {
		return 0, 0, err
	}
	return fds[0], fds[1], nil
}
