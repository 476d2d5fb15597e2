package config

import (
	"flag"
)

// parseFlags defines the global flags on fs, parses args and applies the
// flags that were explicitly set. If sources is non-nil, it tracks them.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todolist", flag.ContinueOnError)
	}

	var dataDir, backend, slotKey, logDir, logLevel, logFormat string
	var logTimestamps bool

	// Storage
	fs.StringVar(&dataDir, "data-dir", cfg.DataDir, "State directory for tasks and logs")
	fs.StringVar(&backend, "backend", cfg.Backend, "Storage backend (file, sqlite)")
	fs.StringVar(&slotKey, "slot", cfg.SlotKey, "Storage slot holding the task list")

	// Logging
	fs.StringVar(&logDir, "log-dir", cfg.LogDir, "Log directory (default <data-dir>/logs)")
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"data-dir":       "data_dir",
		"backend":        "backend",
		"slot":           "slot_key",
		"log-dir":        "log_dir",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
	}

	// Apply only the flags that were set
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data-dir":
			cfg.DataDir = dataDir
		case "backend":
			cfg.Backend = backend
		case "slot":
			cfg.SlotKey = slotKey
		case "log-dir":
			cfg.LogDir = logDir
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-format":
			cfg.LogFormat = logFormat
		case "log-timestamps":
			cfg.LogTimestamps = logTimestamps
		}
		if sources == nil {
			return
		}
		if fieldName, ok := flagToSource[f.Name]; ok {
			sources[fieldName] = SourceFlag
		}
	})

	return nil
}
