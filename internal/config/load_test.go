package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shelf/internal/config"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "tasks.json"), cfg.TasksPath())
	assert.Equal(t, filepath.Join(wd, "library.json"), cfg.LibraryPath())
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "classic", cfg.Theme)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yaml := "data_dir: " + filepath.Join(dir, "from-file") + "\nlibrary_file: books.json\nlog_level: info\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shelf.yaml"), []byte(yaml), 0o644))

	t.Setenv("SHELF_LOG_LEVEL", "error")
	t.Setenv("SHELF_TASKS_FILE", "/abs/todo.json")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--theme", "mono"}))

	cfg, err := config.Load(fs)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "from-file", "books.json"), cfg.LibraryPath(), "file beats defaults")
	assert.Equal(t, "error", cfg.LogLevel, "env beats file")
	assert.Equal(t, "/abs/todo.json", cfg.TasksPath(), "absolute file ignores data dir")
	assert.Equal(t, "mono", cfg.Theme, "flag beats default")
}

func TestFlagBeatsEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SHELF_DATA_DIR", "/from/env")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--data-dir", "/from/flag"}))

	cfg, err := config.Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "/from/flag/tasks.json", cfg.TasksPath())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SHELF_LOG_LEVEL", "chatty")

	_, err := config.Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestExplicitConfigMustExist(t *testing.T) {
	chdir(t, t.TempDir())

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", "missing.yaml"}))

	_, err := config.Load(fs)
	assert.Error(t, err)
}

func TestLoadNormalizesCase(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SHELF_LOG_FORMAT", "JSON")
	t.Setenv("SHELF_LOG_LEVEL", "Warning")

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "warning", cfg.LogLevel)
}
