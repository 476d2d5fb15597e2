package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/todolist-go/internal/app"
	"github.com/nibzard/todolist-go/internal/todo"
)

// addCommand adds one task made of all arguments joined by spaces.
func (c *cli) addCommand(args []string) error {
	session, _, release, err := c.openSession()
	if err != nil {
		return err
	}
	defer release()

	if err := c.report(session.Add(joinArgs(args))); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "ok")
	return nil
}

func (c *cli) toggleCommand(args []string) error {
	return c.indexCommand("toggle", args, (*app.Session).Toggle)
}

func (c *cli) rmCommand(args []string) error {
	return c.indexCommand("rm", args, (*app.Session).Delete)
}

// indexCommand runs op on the task numbered by the single argument.
// Numbers are 1-based as printed by ls.
func (c *cli) indexCommand(name string, args []string, op func(*app.Session, int) error) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: todolist %s <n>", name)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid task number: %q", args[0])
	}

	session, _, release, err := c.openSession()
	if err != nil {
		return err
	}
	defer release()

	if err := op(session, n-1); err != nil {
		if errors.Is(err, todo.ErrIndexOutOfRange) {
			return fmt.Errorf("no task numbered %d", n)
		}
		if err := c.report(err); err != nil {
			return err
		}
	}
	fmt.Fprintln(c.stdout, "ok")
	return nil
}

// report turns a store error into a CLI error. A one-shot run keeps
// nothing in memory, so a failed save is a failure of the command.
func (c *cli) report(err error) error {
	if err == nil {
		return nil
	}
	var perr *app.PersistError
	if errors.As(err, &perr) {
		return fmt.Errorf("task list not saved: %w", perr.Err)
	}
	return err
}

// lsCommand prints the task list.
func (c *cli) lsCommand(args []string) error {
	fs := flag.NewFlagSet("todolist ls", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	format := fs.String("format", "text", "Output format: text, json or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	switch *format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid format: %q (must be text, json or yaml)", *format)
	}

	session, _, release, err := c.openSession()
	if err != nil {
		return err
	}
	defer release()

	tasks := session.Tasks()
	switch *format {
	case "json":
		if tasks == nil {
			tasks = []todo.Task{}
		}
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("encode tasks: %w", err)
		}
		fmt.Fprintln(c.stdout, string(data))
	case "yaml":
		if tasks == nil {
			tasks = []todo.Task{}
		}
		enc := yaml.NewEncoder(c.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("encode tasks: %w", err)
		}
		return enc.Close()
	default:
		if len(tasks) == 0 {
			fmt.Fprintln(c.stdout, "No tasks.")
			return nil
		}
		for i, t := range tasks {
			mark := " "
			if t.IsComplete {
				mark = "x"
			}
			fmt.Fprintf(c.stdout, "%4d  [%s] %s\n", i+1, mark, t.Text)
		}
	}
	return nil
}
