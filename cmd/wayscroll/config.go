// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/wayscroll/wayscroll/internal/wlog"
	"github.com/wayscroll/wayscroll/options"
)

// configError marks an error as user-fixable configuration, mapped to
// exit code 2 rather than the generic fatal-init code 1.
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

func asConfigError(err error, target **configError) bool {
	return errors.As(err, target)
}

// Config is the on-disk compositor configuration, loaded from YAML
// rather than a bespoke format: readable, user-edited, and cheap to
// hot-reload with gopkg.in/yaml.v3.
type Config struct {
	Options options.Options `yaml:"options"`
	Binds   []BindConfig    `yaml:"binds"`
}

// BindConfig is one keyboard shortcut entry as written in the config
// file, before resolution into input.Bind.
type BindConfig struct {
	Trigger string `yaml:"trigger"`
	Mods    string `yaml:"mods"`
	Action  string `yaml:"action"`
}

func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wayscroll", "config.yaml"), nil
}

// LoadConfig reads and parses the config file at path. A missing file
// is not an error: it returns Options.Default with no binds, since a
// fresh install has nothing to load yet.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{Options: *options.Default()}, nil
	}
	if err != nil {
		return nil, &configError{fmt.Errorf("reading config %s: %w", path, err)}
	}
	cfg := &Config{Options: *options.Default()}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &configError{fmt.Errorf("parsing config %s: %w", path, err)}
	}
	return cfg, nil
}

// WatchConfig watches path for changes and calls onChange with the
// freshly reloaded config after each write. It runs until stop is
// closed; reload errors are logged and otherwise ignored, since a
// config that fails to parse mid-session should not take down an
// otherwise-running compositor.
func WatchConfig(path string, stop <-chan struct{}, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-stop:
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := LoadConfig(path)
				if err != nil {
					wlog.Logger.Warn().Err(err).Str("path", path).Msg("config reload failed")
					continue
				}
				onChange(cfg)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}
