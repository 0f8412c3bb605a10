package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"timemgr/internal/config"
	"timemgr/internal/exitcode"
	"timemgr/internal/output"
	"timemgr/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	due         string
	remind      bool
}

// SetDescription sets the task description (for testing).
func (c *AddCmd) SetDescription(description string) {
	c.description = description
}

// SetDue sets the due date input (for testing).
func (c *AddCmd) SetDue(due string) {
	c.due = due
}

// SetRemind enables the reminder (for testing).
func (c *AddCmd) SetRemind(remind bool) {
	c.remind = remind
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "timemgr add --due <date> [--desc <text>] [--remind] <title...>"
}
func (c *AddCmd) NeedsStore() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.BoolVar(&c.remind, "remind", false, "")
	fs.BoolVar(&c.remind, "r", false, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	if strings.TrimSpace(c.due) == "" {
		fmt.Fprintln(errOut, "error: due date required (--due)")
		return exitcode.UserError
	}

	loc, ok := location(cfg, errOut)
	if !ok {
		return exitcode.AuthError
	}
	due, err := parseDate(c.due, now(), loc)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task := svc.AddTask(ctx, title, c.description, due, c.remind)
	if task.ReminderSet && task.NotificationID == "" {
		fmt.Fprintln(errOut, "warning: reminder not scheduled")
	}
	warnIfDirty(svc, errOut)

	if !cfg.Quiet {
		output.FormatTask(out, len(svc.AllTasks()), task, loc)
	}
	return exitcode.Success
}
