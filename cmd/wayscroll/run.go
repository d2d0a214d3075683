// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wayscroll/wayscroll/internal/wlog"
	"github.com/wayscroll/wayscroll/layout"
	"github.com/wayscroll/wayscroll/loop"
)

func newRunCmd() *cobra.Command {
	var (
		asSession  bool
		configPath string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the compositor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompositor(asSession, configPath)
		},
	}
	cmd.Flags().BoolVar(&asSession, "session", false, "register as a systemd user session")
	cmd.Flags().StringVar(&configPath, "config", "", "override config file location")
	return cmd
}

// runCompositor loads the config, builds a NoOutputs layout and the
// event loop, watches the config file, and runs the loop until
// signaled to stop. It creates no session coordinator and attaches no
// DRM, libinput, or Wayland socket backend, so the layout receives no
// outputs here.
func runCompositor(asSession bool, configPath string) error {
	if asSession {
		wlog.SetOutput(os.Stdout, true)
	}

	if configPath == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return &configError{err}
		}
		configPath = p
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	l := layout.NewNoOutputs(&cfg.Options)
	_ = l // no output backend is attached, so l stays in NoOutputs

	ev, err := loop.New()
	if err != nil {
		return err
	}
	defer ev.Close()

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		close(stop)
		ev.RequestWakeup()
	}()

	if err := WatchConfig(configPath, stop, func(newCfg *Config) {
		wlog.Logger.Info().Str("path", configPath).Msg("config reloaded")
	}); err != nil {
		wlog.Logger.Warn().Err(err).Msg("config watch disabled")
	}

	wlog.Logger.Info().Str("config", configPath).Msg("wayscroll starting")
	for {
		select {
		case <-stop:
			wlog.Logger.Info().Msg("wayscroll shutting down")
			return nil
		default:
		}
		if _, err := ev.RunOnce(250*time.Millisecond, func() {}); err != nil {
			return err
		}
	}
}
