package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSystemConfig(t *testing.T) {
	sys := DefaultSystemConfig()

	assert.Equal(t, 5, sys.MaxIterations)
	assert.Equal(t, 6, sys.HistoryWindow)
	assert.Equal(t, 5, sys.SourceLimit)
	assert.Equal(t, 2000, sys.ProbeTimeoutMs)
	assert.Equal(t, "info", sys.LogLevel)
	assert.True(t, sys.EnableTools)
}

func TestLoadSystemConfig(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		sys := LoadSystemConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Equal(t, DefaultSystemConfig(), sys)
	})

	t.Run("corrupt file returns defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "system.json")
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))
		sys := LoadSystemConfig(path)
		assert.Equal(t, DefaultSystemConfig(), sys)
	})

	t.Run("partial file keeps defaults for omitted fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "system.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"max_iterations": 2, "log_level": "debug"}`), 0644))

		sys := LoadSystemConfig(path)
		assert.Equal(t, 2, sys.MaxIterations)
		assert.Equal(t, "debug", sys.LogLevel)
		assert.Equal(t, 6, sys.HistoryWindow)
		assert.True(t, sys.EnableTools)
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing config.json is an error", func(t *testing.T) {
		t.Chdir(t.TempDir())
		_, _, err := Load()
		require.Error(t, err)
	})

	t.Run("missing llm block is rejected", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.WriteFile("config.json", []byte(`{"backend":{"base_url":"http://b"}}`), 0644))

		_, _, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm")
	})

	t.Run("defaults are filled in", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		cfgJSON := `{"llm": [{"type": "ollama", "models": ["llama3"]}]}`
		require.NoError(t, os.WriteFile("config.json", []byte(cfgJSON), 0644))

		cfg, sys, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
		assert.Equal(t, 9453, cfg.Server.Port)
		assert.Equal(t, DefaultSystemConfig(), sys, "no system.json means defaults")
	})

	t.Run("system.json overrides sit next to config.json", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.WriteFile("config.json", []byte(`{"llm": [{"type":"ollama","models":["m"]}]}`), 0644))
		require.NoError(t, os.WriteFile("system.json", []byte(`{"enable_tools": false}`), 0644))

		_, sys, err := Load()
		require.NoError(t, err)
		assert.False(t, sys.EnableTools)
		assert.Equal(t, 5, sys.MaxIterations)
	})
}
