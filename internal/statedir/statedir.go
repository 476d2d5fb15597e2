// Package statedir names the files inside the todolist state directory.
package statedir

import (
	"os"
	"path/filepath"
)

const (
	// Dir is the name of the state directory under the user's home.
	Dir = ".todolist"

	// ConfigFile is the config file name, both in Dir and in a project root.
	ConfigFile = "todolist.toml"

	// LogsDir is the per-run log directory inside Dir.
	LogsDir = "logs"

	// AppName is used for OS-specific config directories.
	AppName = "todolist"
)

// Default returns ~/.todolist, or .todolist when the home dir is unknown.
func Default() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return Dir
	}
	return filepath.Join(home, Dir)
}

// ConfigPath returns the config file inside a state directory.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFile)
}

// LogsPath returns the log directory inside a state directory.
func LogsPath(dir string) string {
	return filepath.Join(dir, LogsDir)
}
