package config

import (
	"os"
	"path/filepath"
	"testing"

	"capture/agent"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, agent.ForagerName, cfg.Team.First)
	require.Equal(t, agent.DefenderName, cfg.Team.Second)
	require.Equal(t, agent.DefaultTuning(), cfg.Tuning)
}

func TestLoad(t *testing.T) {
	t.Run("missing keys keep their defaults", func(t *testing.T) {
		path := writeConfig(t, `
log:
  level: debug
tuning:
  top_food: 5
trace:
  dir: /tmp/traces
  compress: true
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		require.Equal(t, "debug", cfg.Log.Level)
		require.Equal(t, 5, cfg.Tuning.TopFood)
		require.Equal(t, 2, cfg.Tuning.CarryLimit, "Untouched tuning stays default")
		require.Equal(t, ":8080", cfg.Server.Addr)
		require.Equal(t, "/tmp/traces", cfg.Trace.Dir)
		require.True(t, cfg.Trace.Compress)
	})

	t.Run("the example config is valid", func(t *testing.T) {
		cfg, err := Load(filepath.Join("..", "config.example.yaml"))
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("missing files are an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [unclosed"))
		require.Error(t, err)
	})

	t.Run("unknown log levels are rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, "log:\n  level: loud\n"))
		require.Error(t, err)
	})

	t.Run("unknown agents are rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, "team:\n  first: sprinter\n"))
		require.ErrorIs(t, err, agent.ErrUnknownAgent)
	})

	t.Run("invalid tuning is rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, "tuning:\n  carry_limit: 0\n"))
		require.Error(t, err)
	})

	t.Run("safety outside its range is rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, "tuning:\n  safety_max: 50\n  safety_scale: 1000\n"))
		require.Error(t, err)

		_, err = Load(writeConfig(t, "tuning:\n  safety_idle: 3\n  safety_base: 3\n"))
		require.Error(t, err)
	})
}
