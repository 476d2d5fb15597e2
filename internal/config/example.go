package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todolist configuration file
# Values can be overridden by TODOLIST_* environment variables or CLI flags.

# State directory (supports ~ expansion and $VAR / %VAR% references)
data_dir = "~/.todolist"

# Storage backend: "file" keeps one JSON file per slot, "sqlite" keeps
# every slot in todolist.db
backend = "file"

# Slot holding the task list. Use a different slot to keep separate lists.
slot_key = "tasks"

# Per-run log files (default: <data_dir>/logs)
# log_dir = "~/.todolist/logs"

# Logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = true
`
}
