package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipedit/internal/document"
	"github.com/hammamikhairi/recipedit/internal/logger"
)

// isolate points HOME at an empty dir and runs from another so no real
// config or .env leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, logger.LevelNormal, cfg.LogLevel)
	assert.Equal(t, "recipedit.log", cfg.LogFile)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Equal(t, document.FormatJSON, cfg.ExportFormat)
	assert.Equal(t, "", cfg.InboxDir)
	assert.Equal(t, "", cfg.File)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "recipedit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: verbose\nexport_format: yaml\nexport_dir: out/\n"), 0o644))
	t.Setenv("RECIPEDIT_EXPORT_FORMAT", "json")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, logger.LevelVerbose, cfg.LogLevel)
	assert.Equal(t, "out", cfg.ExportDir)
	assert.Equal(t, document.FormatJSON, cfg.ExportFormat, "env overrides file")
	assert.Equal(t, path, cfg.File)
}

func TestLoadFromDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RECIPEDIT_INBOX_DIR=inbox\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("RECIPEDIT_INBOX_DIR") })

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "inbox", cfg.InboxDir)
}

func TestLoadRejectsBadValues(t *testing.T) {
	isolate(t)

	v := New()
	v.Set(KeyExportFormat, "xml")
	_, err := Load(v, "")
	assert.Error(t, err)

	v = New()
	v.Set(KeyLogLevel, "loud")
	_, err = Load(v, "")
	assert.Error(t, err)

	_, err = Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// chdir switches the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
