// SPDX-License-Identifier: Unlicense OR MIT

// Package loop implements the single-threaded cooperative event loop:
// one epoll instance multiplexing every blocking source the process
// has (client sockets, DRM fds, libinput, udev, timers, IPC, DBus,
// PipeWire), with every input source drained and dispatched before the
// per-iteration render callback runs. It generalizes the poll-on-a-
// display-fd-plus-a-notify-pipe shape of a single-window event loop to
// an arbitrary, dynamically registered set of sources.
package loop

import (
	"sort"
	"time"

	"golang.org/x/sys/unix"

	"github.com/wayscroll/wayscroll/internal/wlog"
)

// Class partitions registered sources so the loop can guarantee all
// input is processed before any render is attempted within one
// iteration.
type Class uint8

const (
	// ClassInput covers Wayland client sockets, libinput, udev, the
	// session/seat fd, IPC, DBus, and PipeWire.
	ClassInput Class = iota
	// ClassTimer covers internal timerfds (estimated-vblank, bind
	// cooldowns, the frame-callback fallback flush).
	ClassTimer
	// ClassRender covers DRM fds (vblank/page-flip completion).
	ClassRender
)

// Source is one fd the loop multiplexes. Dispatch is called when
// epoll reports the fd readable; it must not block.
type Source struct {
	Name     string
	Fd       int
	Class    Class
	Dispatch func()
}

// Loop owns the epoll instance and the registered source table.
type Loop struct {
	epfd    int
	sources map[int]Source
	// wake is an eventfd used by RequestWakeup to break epoll_wait from
	// another goroutine (e.g. a signal handler) without the loop
	// blocking on anything but epoll itself.
	wake int
}

// New creates the epoll instance and the internal wakeup eventfd.
func New() (*Loop, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	wake, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		unix.Close(epfd)
		return nil, err
	}
	l := &Loop{epfd: epfd, sources: make(map[int]Source), wake: wake}
	if err := l.Register(Source{
		Name:  "wakeup",
		Fd:    wake,
		Class: ClassInput,
		Dispatch: func() {
			var buf [8]byte
			unix.Read(wake, buf[:])
		},
	}); err != nil {
		unix.Close(epfd)
		unix.Close(wake)
		return nil, err
	}
	return l, nil
}

// Register adds a source to the epoll set.
func (l *Loop) Register(s Source) error {
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(s.Fd)}
	if err := unix.EpollCtl(l.epfd, unix.EPOLL_CTL_ADD, s.Fd, &ev); err != nil {
		return err
	}
	l.sources[s.Fd] = s
	return nil
}

// Unregister removes a source, e.g. when a client disconnects or a
// timer is cancelled.
func (l *Loop) Unregister(fd int) error {
	if _, ok := l.sources[fd]; !ok {
		return nil
	}
	delete(l.sources, fd)
	return unix.EpollCtl(l.epfd, unix.EPOLL_CTL_DEL, fd, nil)
}

// RequestWakeup breaks a blocked epoll_wait from outside the loop
// goroutine; safe to call from a signal handler.
func (l *Loop) RequestWakeup() {
	var one [8]byte
	one[0] = 1
	unix.Write(l.wake, one[:])
}

const maxEpollEvents = 64

// RunOnce performs exactly one iteration: block in epoll_wait for up
// to timeout, dispatch every ready source grouped by Class (input
// before timer before render), then call render if any source fired.
// Returns the number of sources dispatched.
func (l *Loop) RunOnce(timeout time.Duration, render func()) (int, error) {
	var events [maxEpollEvents]unix.EpollEvent
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}
	n, err := unix.EpollWait(l.epfd, events[:], ms)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}

	ready := make([]Source, 0, n)
	for i := 0; i < n; i++ {
		fd := int(events[i].Fd)
		s, ok := l.sources[fd]
		if !ok {
			wlog.InvariantViolation("epoll reported an unregistered fd")
			continue
		}
		ready = append(ready, s)
	}
	sort.SliceStable(ready, func(i, j int) bool { return ready[i].Class < ready[j].Class })

	for _, s := range ready {
		s.Dispatch()
	}
	if len(ready) > 0 && render != nil {
		render()
	}
	return len(ready), nil
}

// Close releases the epoll and wakeup fds.
func (l *Loop) Close() error {
	unix.Close(l.wake)
	return unix.Close(l.epfd)
}
