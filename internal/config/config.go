// Package config loads shelf settings from defaults, an optional YAML file,
// SHELF_* environment variables and command-line flags, in that order of
// increasing precedence.
package config

import "path/filepath"

// Config holds all application configuration.
type Config struct {
	DataDir     string `mapstructure:"data_dir"`
	TasksFile   string `mapstructure:"tasks_file" validate:"required"`
	LibraryFile string `mapstructure:"library_file" validate:"required"`
	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=debug info warn warning error"`
	LogFormat   string `mapstructure:"log_format" validate:"required,oneof=text json"`
	Theme       string `mapstructure:"theme" validate:"required,oneof=classic neon mono"`
}

// TasksPath is where the task store lives.
func (c Config) TasksPath() string { return c.resolve(c.TasksFile) }

// LibraryPath is where the catalog store lives.
func (c Config) LibraryPath() string { return c.resolve(c.LibraryFile) }

// resolve joins a store file onto the data dir; absolute file names win.
func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
