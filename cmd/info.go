package cmd

import (
	"flag"
	"fmt"

	"github.com/nibzard/todolist-go/internal/config"
	"github.com/nibzard/todolist-go/internal/logging"
)

// configCommand shows the effective configuration and where each value came from.
func (c *cli) configCommand(args []string) error {
	fs := flag.NewFlagSet("todolist config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(c.stdout, config.ExampleConfig())
		return nil
	}

	gfs := flag.NewFlagSet("todolist", flag.ContinueOnError)
	gfs.SetOutput(c.stderr)
	gfs.Bool("help", false, "")
	gfs.Bool("h", false, "")
	gfs.Bool("version", false, "")
	gfs.Bool("v", false, "")
	cws, err := config.LoadWithSources(gfs, c.globalArgs)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if len(cws.Files) == 0 {
		fmt.Fprintln(c.stdout, "Config files: none")
	} else {
		fmt.Fprintln(c.stdout, "Config files:")
		for _, f := range cws.Files {
			fmt.Fprintf(c.stdout, "  %s\n", f)
		}
	}
	fmt.Fprintln(c.stdout)

	for _, field := range config.Fields() {
		source := cws.Sources[field]
		if source == "" {
			source = config.SourceDefault
		}
		fmt.Fprintf(c.stdout, "%-16s %-40s (%s)\n", field, cws.Config.Value(field), source)
	}
	return nil
}

// logCommand prints the tail of the most recent run log.
func (c *cli) logCommand(args []string) error {
	fs := flag.NewFlagSet("todolist log", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	lines := fs.Int("n", 50, "Number of lines to show, 0 for all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	path, err := logging.FindLatestLog(c.cfg.LogDir)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(c.stdout, "No log files found.")
		return nil
	}
	return logging.TailLog(c.stdout, path, *lines)
}
