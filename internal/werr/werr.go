// SPDX-License-Identifier: Unlicense OR MIT

// Package werr attaches an error-kind tag to wrapped errors using
// github.com/pkg/errors, so the event loop can dispatch on kind to
// decide severity and whether it keeps running.
package werr

import "github.com/pkg/errors"

// Kind classifies an error by how the event loop should react to it.
type Kind int

const (
	KindUnknown Kind = iota
	KindDeviceOpen
	KindDRMTransient
	KindBufferImport
	KindVBlankAnomaly
	KindInvariant
	KindProtocol
	KindSession
)

func (k Kind) String() string {
	switch k {
	case KindDeviceOpen:
		return "device-open"
	case KindDRMTransient:
		return "drm-transient"
	case KindBufferImport:
		return "buffer-import"
	case KindVBlankAnomaly:
		return "vblank-anomaly"
	case KindInvariant:
		return "invariant"
	case KindProtocol:
		return "protocol"
	case KindSession:
		return "session"
	default:
		return "unknown"
	}
}

type kindedError struct {
	kind Kind
	err  error
}

func (e *kindedError) Error() string { return e.err.Error() }
func (e *kindedError) Unwrap() error { return e.err }
func (e *kindedError) Cause() error  { return e.err }

// Wrap attaches kind to err with a message, preserving the original
// error as the cause.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &kindedError{kind: kind, err: errors.Wrap(err, msg)}
}

// KindOf extracts the Kind tag from err, or KindUnknown if untagged.
func KindOf(err error) Kind {
	var ke *kindedError
	for err != nil {
		if k, ok := err.(*kindedError); ok {
			ke = k
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if ke == nil {
		return KindUnknown
	}
	return ke.kind
}
