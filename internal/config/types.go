package config

import (
	"strconv"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultDataDir   = "~/.todolist"
	DefaultBackend   = "file"
	DefaultSlotKey   = "tasks"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for todolist.
type Config struct {
	// Storage
	DataDir string `toml:"data_dir"`
	Backend string `toml:"backend"`
	SlotKey string `toml:"slot_key"`

	// Logging configuration. An empty LogDir means <data_dir>/logs.
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
}

// configFields returns the configurable field names in display order.
func configFields() []string {
	return []string{
		"data_dir",
		"backend",
		"slot_key",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
	}
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

// Value returns the string form of a field named by its TOML key.
func (c *Config) Value(field string) string {
	switch field {
	case "data_dir":
		return c.DataDir
	case "backend":
		return c.Backend
	case "slot_key":
		return c.SlotKey
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return strconv.FormatBool(c.LogTimestamps)
	}
	return ""
}

func setDefaults(cfg *Config) {
	cfg.DataDir = DefaultDataDir
	cfg.Backend = DefaultBackend
	cfg.SlotKey = DefaultSlotKey
	cfg.LogDir = ""
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = true
}
