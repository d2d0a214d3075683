// SPDX-License-Identifier: Unlicense OR MIT

// Package wlog is the compositor's single structured logger. It wraps
// zerolog with helpers named after the compositor's error taxonomy, so
// call sites read as "what kind of failure" rather than "what level".
package wlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the process-wide structured logger.
var Logger = zerolog.New(defaultWriter()).With().Timestamp().Logger()

func defaultWriter() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}
}

// SetOutput redirects Logger's destination, used by `--session` mode
// to switch to journald-friendly JSON (no color codes).
func SetOutput(w io.Writer, json bool) {
	if json {
		Logger = zerolog.New(w).With().Timestamp().Logger()
		return
	}
	Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}).With().Timestamp().Logger()
}

// DeviceWarn logs a device-open failure: the GPU is unavailable,
// permission was denied, or the device is a software renderer. The
// device is skipped but the session continues.
func DeviceWarn(node string, err error) {
	Logger.Warn().Str("node", node).Err(err).Msg("device open failed, skipping")
}

// DRMTransient logs an atomic-commit / mode-pick / missing-property
// failure. The specific connector is skipped; others continue.
func DRMTransient(connector string, err error) {
	Logger.Warn().Str("connector", connector).Err(err).Msg("DRM operation failed, skipping connector")
}

// BufferImportFailed logs a client dmabuf import failure at debug
// level; the client observes the failure through the DMA-BUF protocol.
func BufferImportFailed(client string, err error) {
	Logger.Debug().Str("client", client).Err(err).Msg("dmabuf import failed")
}

// VBlankAnomaly logs a rogue vblank event received in an
// unexpected redraw state. Logged once per occurrence at error level,
// but the caller still treats it as needing a redraw.
func VBlankAnomaly(output string, state string) {
	Logger.Error().Str("output", output).Str("state", state).Msg("vblank received in unexpected state")
}

// InvariantViolation logs a debug-build invariant check failure.
// Release builds must not panic on this path; this call is the only
// observable effect.
func InvariantViolation(what string) {
	Logger.Error().Str("invariant", what).Msg("invariant violation")
}

// ProtocolError logs a client protocol error. Client disconnection
// following this is expected and not itself an error condition.
func ProtocolError(client string, err error) {
	Logger.Info().Str("client", client).Err(err).Msg("client protocol error")
}

// SessionRace logs a DRM I/O attempted while the session is
// paused; the caller marks the device inactive and drops the op
// rather than blocking.
func SessionRace(op string) {
	Logger.Warn().Str("op", op).Msg("dropped DRM operation during session pause")
}
