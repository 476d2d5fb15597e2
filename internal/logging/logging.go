// Package logging writes per-run log files and tail output.
package logging

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const logSuffix = ".log"

// DefaultKeep is how many run logs Prune leaves in place.
const DefaultKeep = 20

// Options configures a logger.
type Options struct {
	Level      string // debug, info, warn, error
	Format     string // text, json, logfmt
	Timestamps bool
	Prefix     string
}

// DefaultOptions returns the options used when no config is available.
func DefaultOptions() Options {
	return Options{
		Level:      "info",
		Format:     "text",
		Timestamps: true,
		Prefix:     "todolist",
	}
}

// NewLogger builds a charmbracelet logger writing to w.
func NewLogger(w io.Writer, opts Options) *log.Logger {
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter(opts.Format),
		ReportTimestamp: opts.Timestamps,
		TimeFormat:      time.RFC3339,
		Prefix:          opts.Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func formatter(name string) log.Formatter {
	switch strings.ToLower(name) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// RunLogger manages the log file of one program run.
type RunLogger struct {
	Dir     string
	RunID   string
	LogPath string
	Logger  *log.Logger
	file    *os.File
}

// NewRunLogger creates dir if needed and opens <dir>/<run-id>.log.
func NewRunLogger(dir string, opts Options) (*RunLogger, error) {
	if dir == "" {
		return nil, fmt.Errorf("log dir is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := runID()
	logPath := filepath.Join(dir, id+logSuffix)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	return &RunLogger{
		Dir:     dir,
		RunID:   id,
		LogPath: logPath,
		Logger:  NewLogger(file, opts),
		file:    file,
	}, nil
}

// Close closes the log file.
func (r *RunLogger) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}

func runID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405"), os.Getpid())
}

// runLogs returns the run log files in dir, newest first.
func runLogs(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type entryInfo struct {
		entry   os.DirEntry
		modTime time.Time
	}
	var logs []entryInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), logSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		logs = append(logs, entryInfo{entry: entry, modTime: info.ModTime()})
	}

	sort.Slice(logs, func(i, j int) bool {
		if logs[i].modTime.Equal(logs[j].modTime) {
			return logs[i].entry.Name() > logs[j].entry.Name()
		}
		return logs[i].modTime.After(logs[j].modTime)
	})

	out := make([]os.DirEntry, len(logs))
	for i, l := range logs {
		out[i] = l.entry
	}
	return out, nil
}

// FindLatestLog returns the newest run log in dir, or "" if there is none.
func FindLatestLog(dir string) (string, error) {
	logs, err := runLogs(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read log dir: %w", err)
	}
	if len(logs) == 0 {
		return "", nil
	}
	return filepath.Join(dir, logs[0].Name()), nil
}

// Prune removes all but the newest keep run logs in dir and returns how
// many files were removed.
func Prune(dir string, keep int) (int, error) {
	if keep < 1 {
		keep = 1
	}
	logs, err := runLogs(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read log dir: %w", err)
	}

	removed := 0
	for _, entry := range logs[min(keep, len(logs)):] {
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("remove old log: %w", err)
		}
		removed++
	}
	return removed, nil
}

// TailLog writes the last n lines of the file at path to w. n <= 0 writes
// the whole file.
func TailLog(w io.Writer, path string, n int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n <= 0 {
		_, err = io.Copy(w, file)
		return err
	}

	ring := make([]string, n)
	count := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		ring[count%n] = scanner.Text()
		count++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	start := 0
	if count > n {
		start = count - n
	}
	for i := start; i < count; i++ {
		if _, err := fmt.Fprintln(w, ring[i%n]); err != nil {
			return err
		}
	}
	return nil
}
