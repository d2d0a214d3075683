// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.NotNil(t, cfg)
}

func TestLoadConfigParsesBinds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "binds:\n  - trigger: \"Q\"\n    mods: \"Super\"\n    action: \"close-window\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Binds, 1)
	require.Equal(t, "close-window", cfg.Binds[0].Action)
}

func TestLoadConfigInvalidYAMLIsConfigError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("binds: [this is not valid"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	var ce *configError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, exitConfigErr, exitCodeFor(err))
}

func TestExitCodeForNonConfigErrorIsFatalInit(t *testing.T) {
	require.Equal(t, exitFatalInit, exitCodeFor(errors.New("boom")))
}
