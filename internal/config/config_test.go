package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", dir)
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })
	return dir
}

func writeConfig(t *testing.T, home, body string) {
	t.Helper()
	cfgDir := filepath.Join(home, ".qment")
	require.NoError(t, os.MkdirAll(cfgDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config"), []byte(body), 0600))
}

func TestSaveConfigCreatesDirectories(t *testing.T) {
	withHome(t)

	cfg := Config{PresetPath: "/tmp/preset.json"}
	require.NoError(t, cfg.Save())

	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadConfigNonExistent(t *testing.T) {
	withHome(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveLoadRoundtripWithAllFields(t *testing.T) {
	withHome(t)

	original := Config{
		PresetPath:    "/data/preset.jsonc",
		RecentProject: "/data/bank.json",
		LogFile:       "/tmp/qment.log",
		LogLevel:      "debug",
		VimKeys:       true,
		DefaultGroups: []string{"Paper", "Topic"},
	}
	require.NoError(t, original.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestLoadConfigEmptyFileUsesDefaults(t *testing.T) {
	home := withHome(t)
	writeConfig(t, home, "")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	home := withHome(t)
	writeConfig(t, home, "preset_path: /p.json\nvim_keys: true\n")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/p.json", loaded.PresetPath)
	assert.True(t, loaded.VimKeys)
	assert.Equal(t, []string{"Topic", "Difficulty"}, loaded.DefaultGroups)
	assert.Equal(t, filepath.Join(home, ".qment", "qment.log"), loaded.LogFile)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	home := withHome(t)
	writeConfig(t, home, "invalid: yaml: content:")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownLogLevel(t *testing.T) {
	home := withHome(t)
	writeConfig(t, home, "log_level: chatty\n")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestPathReturnsCorrectLocation(t *testing.T) {
	path := Path()
	assert.Contains(t, path, ".qment")
	assert.Contains(t, path, "config")
}
