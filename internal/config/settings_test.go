package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings(t *testing.T) {
	t.Run("missing file yields empty settings", func(t *testing.T) {
		t.Setenv("SPYGLASS_HOME", t.TempDir())

		settings, err := LoadSettings()
		require.NoError(t, err)
		assert.Equal(t, &Settings{}, settings)
	})

	t.Run("valid settings file", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("SPYGLASS_HOME", home)

		content := `{
			"allow_absolute_paths": false,
			"context_lines": 5,
			"editor": "zed",
			"port": 8123
		}`
		require.NoError(t, os.WriteFile(filepath.Join(home, "settings.json"), []byte(content), 0644))

		settings, err := LoadSettings()
		require.NoError(t, err)

		require.NotNil(t, settings.AllowAbsolutePaths)
		assert.False(t, *settings.AllowAbsolutePaths)
		require.NotNil(t, settings.ContextLines)
		assert.Equal(t, 5, *settings.ContextLines)
		assert.Equal(t, "zed", settings.Editor)
		require.NotNil(t, settings.Port)
		assert.Equal(t, 8123, *settings.Port)
		assert.Nil(t, settings.Debug)
	})

	t.Run("invalid json is an error", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("SPYGLASS_HOME", home)
		require.NoError(t, os.WriteFile(filepath.Join(home, "settings.json"), []byte("{not json"), 0644))

		_, err := LoadSettings()
		assert.Error(t, err)
	})

	t.Run("workspace tilde is expanded", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("SPYGLASS_HOME", home)
		require.NoError(t, os.WriteFile(filepath.Join(home, "settings.json"),
			[]byte(`{"workspace": "~/projects"}`), 0644))

		settings, err := LoadSettings()
		require.NoError(t, err)
		assert.NotContains(t, settings.Workspace, "~")
		assert.True(t, filepath.IsAbs(settings.Workspace))
	})
}
