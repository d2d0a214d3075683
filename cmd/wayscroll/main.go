// SPDX-License-Identifier: Unlicense OR MIT

// Command wayscroll is the compositor's own binary: it starts the
// compositor (the default `run` subcommand) or talks to a running
// instance over its IPC socket (`msg`).
package main

import (
	"os"

	"github.com/wayscroll/wayscroll/internal/wlog"
)

// Exit codes: 0 is the only code a long-running process returns on a
// clean shutdown, 1 covers anything that kept the compositor from
// starting at all, 2 is reserved for a config file the user can
// actually fix.
const (
	exitOK        = 0
	exitFatalInit = 1
	exitConfigErr = 2
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		wlog.Logger.Error().Err(err).Msg("command failed")
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	var ce *configError
	if asConfigError(err, &ce) {
		return exitConfigErr
	}
	return exitFatalInit
}
