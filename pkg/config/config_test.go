package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esoterra/bft/pkg/config"
	"github.com/esoterra/bft/pkg/core"
)

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bft.yaml")
	contents := "ticks_per_step: 4\nlog_level: debug\nbreakpoints:\n  - x: 1\n    y: 2\n  - x: 3\n    y: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.TicksPerStep)
	assert.Equal(t, uint16(4), *cfg.TicksPerStep)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t,
		[]core.Position{{X: 1, Y: 2}, {X: 3, Y: 4}},
		cfg.Positions(),
	)
}

func TestLoadEmptyConfigLeavesDefaultsNil(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bft.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.TicksPerStep)
	assert.Empty(t, cfg.LogLevel)
	assert.Empty(t, cfg.Positions())
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := config.Load("/nonexistent/bft.yaml")
	assert.Error(t, err)
}
