package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"timemgr/internal/config"
	"timemgr/internal/exitcode"
	"timemgr/internal/output"
	"timemgr/internal/service"
)

func init() {
	Register(&ListCmd{})
	Register(&ShowCmd{})
}

// ListCmd implements the list command.
// Handles both `timemgr` (no args) and `timemgr list`.
type ListCmd struct {
	open bool
}

// SetOpenOnly hides completed tasks (for testing).
func (c *ListCmd) SetOpenOnly(open bool) {
	c.open = open
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List all tasks" }
func (c *ListCmd) Usage() string     { return "timemgr list [--open]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	loc, ok := location(cfg, errOut)
	if !ok {
		return exitcode.AuthError
	}

	printed := 0
	for i, task := range svc.AllTasks() {
		if c.open && task.Completed {
			continue
		}
		output.FormatTask(out, i+1, task, loc)
		printed++
	}

	if printed == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Show a task" }
func (c *ShowCmd) Usage() string     { return "timemgr show <ref>" }
func (c *ShowCmd) NeedsStore() bool  { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, ok := resolveOrFail(svc, args, errOut)
	if !ok {
		return exitcode.UserError
	}
	loc, ok := location(cfg, errOut)
	if !ok {
		return exitcode.AuthError
	}
	output.FormatTaskDetail(out, task, loc)
	return exitcode.Success
}
