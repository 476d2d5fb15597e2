// Package cmd implements the CLI command structure for todolist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/app"
	"github.com/nibzard/todolist-go/internal/config"
	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/storage"
	"github.com/nibzard/todolist-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// cli carries what every subcommand needs.
type cli struct {
	cfg        *config.Config
	globalArgs []string
	stdout     io.Writer
	stderr     io.Writer
}

// Run executes the todolist CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todolist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c := &cli{
		cfg:        cfg,
		globalArgs: args[:len(args)-fs.NArg()],
		stdout:     stdout,
		stderr:     stderr,
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return c.versionCommand()
	}

	// Determine the subcommand; the TUI is the default
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return c.tuiCommand(ctx, remainingArgs)
	case "add":
		return c.addCommand(remainingArgs)
	case "toggle", "done":
		return c.toggleCommand(remainingArgs)
	case "rm", "delete":
		return c.rmCommand(remainingArgs)
	case "ls", "list":
		return c.lsCommand(remainingArgs)
	case "config":
		return c.configCommand(remainingArgs)
	case "log", "tail":
		return c.logCommand(remainingArgs)
	case "version":
		return c.versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openSession starts logging and loads the task list from the configured slot.
// The returned func releases both.
func (c *cli) openSession() (*app.Session, *log.Logger, func(), error) {
	logger, closeLog := c.startLogging()

	kv, err := storage.Open(c.cfg.Backend, c.cfg.DataDir)
	if err != nil {
		closeLog()
		return nil, nil, nil, fmt.Errorf("opening storage: %w", err)
	}
	adapter := storage.NewAdapter(kv, c.cfg.SlotKey, logger)
	session := app.Start(adapter, logger)

	release := func() {
		if err := kv.Close(); err != nil {
			logger.Warn("closing storage", "err", err)
		}
		closeLog()
	}
	return session, logger, release, nil
}

// startLogging opens this run's log file. If that fails, warnings go to
// stderr instead.
func (c *cli) startLogging() (*log.Logger, func()) {
	opts := logging.Options{
		Level:      c.cfg.LogLevel,
		Format:     c.cfg.LogFormat,
		Timestamps: c.cfg.LogTimestamps,
		Prefix:     "todolist",
	}

	rl, err := logging.NewRunLogger(c.cfg.LogDir, opts)
	if err != nil {
		opts.Level = "warn"
		logger := logging.NewLogger(c.stderr, opts)
		logger.Warn("file logging disabled", "err", err)
		return logger, func() {}
	}

	if removed, err := logging.Prune(c.cfg.LogDir, logging.DefaultKeep); err != nil {
		rl.Logger.Warn("pruning old logs", "err", err)
	} else if removed > 0 {
		rl.Logger.Debug("pruned old logs", "removed", removed)
	}
	rl.Logger.Debug("run started",
		"version", Version,
		"backend", c.cfg.Backend,
		"data_dir", c.cfg.DataDir,
		"slot", c.cfg.SlotKey,
	)
	return rl.Logger, func() { rl.Close() }
}

// tuiCommand launches the interactive list.
func (c *cli) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todolist tui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	inline := fs.Bool("inline", false, "Render below the prompt instead of using the alternate screen")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY (use add, ls, toggle or rm instead)")
	}

	session, logger, release, err := c.openSession()
	if err != nil {
		return err
	}
	defer release()

	title := ui.DefaultTitle
	if c.cfg.SlotKey != storage.DefaultKey {
		title = fmt.Sprintf("%s (%s)", ui.DefaultTitle, c.cfg.SlotKey)
	}
	return ui.RunTUI(ctx, session, logger, ui.WithTitle(title), ui.WithAltScreen(!*inline))
}

func (c *cli) versionCommand() error {
	fmt.Fprintf(c.stdout, "todolist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todolist - a small persistent to-do list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todolist [global options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui              Interactive list (default command)")
	fmt.Fprintln(w, "  add <text...>    Add a task")
	fmt.Fprintln(w, "  toggle <n>       Mark task n complete or incomplete")
	fmt.Fprintln(w, "  rm <n>           Delete task n")
	fmt.Fprintln(w, "  ls               List tasks")
	fmt.Fprintln(w, "  config           Show effective configuration")
	fmt.Fprintln(w, "  log              Show the latest run log")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Command Options:")
	fmt.Fprintln(w, "  ls -format string")
	fmt.Fprintln(w, "        Output format: text, json or yaml (default \"text\")")
	fmt.Fprintln(w, "  config -example")
	fmt.Fprintln(w, "        Print an example config file")
	fmt.Fprintln(w, "  log -n int")
	fmt.Fprintln(w, "        Number of lines to show, 0 for all (default 50)")
	fmt.Fprintln(w, "  tui -inline")
	fmt.Fprintln(w, "        Render below the prompt instead of using the alternate screen")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tasks are numbered from 1 in the order they were added.")
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
