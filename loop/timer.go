// SPDX-License-Identifier: Unlicense OR MIT

package loop

import (
	"time"

	"golang.org/x/sys/unix"
)

// RegistrationToken identifies a timer source registered with
// ArmTimer, so the caller can cancel it (estimated-vblank timers
// superseded by a real vblank, bind cooldowns that expire naturally
// without needing cancellation).
type RegistrationToken struct {
	fd int
}

// ArmTimer creates a timerfd that fires once after d and registers it
// on the loop under ClassTimer, calling fn when it fires. The timer
// disarms and unregisters itself after firing; callers that need a
// repeating timer (the ~995ms frame-callback fallback flush) re-arm
// from within fn.
func (l *Loop) ArmTimer(d time.Duration, name string, fn func()) (RegistrationToken, error) {
	fd, err := unix.TimerfdCreate(unix.CLOCK_MONOTONIC, unix.TFD_CLOEXEC|unix.TFD_NONBLOCK)
	if err != nil {
		return RegistrationToken{}, err
	}
	spec := unix.ItimerSpec{
		Value: unix.NsecToTimespec(d.Nanoseconds()),
	}
	if err := unix.TimerfdSettime(fd, 0, &spec, nil); err != nil {
		unix.Close(fd)
		return RegistrationToken{}, err
	}
	tok := RegistrationToken{fd: fd}
	err = l.Register(Source{
		Name:  name,
		Fd:    fd,
		Class: ClassTimer,
		Dispatch: func() {
			var buf [8]byte
			unix.Read(fd, buf[:])
			l.Unregister(fd)
			unix.Close(fd)
			fn()
		},
	})
	if err != nil {
		unix.Close(fd)
		return RegistrationToken{}, err
	}
	return tok, nil
}

// CancelTimer removes a timer registered with ArmTimer before it
// fires, used when an estimated-vblank timer is superseded by a real
// vblank completion landing first.
func (l *Loop) CancelTimer(tok RegistrationToken) error {
	if err := l.Unregister(tok.fd); err != nil {
		return err
	}
	return unix.Close(tok.fd)
}
