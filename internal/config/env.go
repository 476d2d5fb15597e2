package config

import (
	"os"
	"strconv"
)

// loadFromEnv overrides config from TODOLIST_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TODOLIST_DATA_DIR"); v != "" {
		cfg.DataDir = v
		set("data_dir")
	}
	if v := os.Getenv("TODOLIST_BACKEND"); v != "" {
		cfg.Backend = v
		set("backend")
	}
	if v := os.Getenv("TODOLIST_SLOT"); v != "" {
		cfg.SlotKey = v
		set("slot_key")
	}
	if v := os.Getenv("TODOLIST_LOG_DIR"); v != "" {
		cfg.LogDir = v
		set("log_dir")
	}
	if v := os.Getenv("TODOLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("TODOLIST_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("TODOLIST_LOG_TIMESTAMPS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogTimestamps = b
			set("log_timestamps")
		}
	}
}
