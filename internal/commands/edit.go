package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"timemgr/internal/config"
	"timemgr/internal/exitcode"
	"timemgr/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Only flags given on the command line
// change the task.
type EditCmd struct {
	title       *string
	description *string
	due         *string
	remind      *bool
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(title string) { c.title = &title }

// SetDescription sets the new description (for testing).
func (c *EditCmd) SetDescription(description string) { c.description = &description }

// SetDue sets the new due date input (for testing).
func (c *EditCmd) SetDue(due string) { c.due = &due }

// SetRemind sets the reminder flag (for testing).
func (c *EditCmd) SetRemind(remind bool) { c.remind = &remind }

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task" }
func (c *EditCmd) Usage() string {
	return "timemgr edit [--title <t>] [--desc <d>] [--due <date>] [--remind[=false]] <ref>"
}
func (c *EditCmd) NeedsStore() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title, c.description, c.due, c.remind = nil, nil, nil, nil
	fs.Func("title", "", func(s string) error { c.title = &s; return nil })
	fs.Func("desc", "", func(s string) error { c.description = &s; return nil })
	fs.Func("due", "", func(s string) error { c.due = &s; return nil })
	fs.Var(&optionalBool{target: &c.remind}, "remind", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, ok := resolveOrFail(svc, args, errOut)
	if !ok {
		return exitcode.UserError
	}
	if c.title == nil && c.description == nil && c.due == nil && c.remind == nil {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	if c.title != nil {
		if strings.TrimSpace(*c.title) == "" {
			fmt.Fprintln(errOut, "error: title required")
			return exitcode.UserError
		}
		task.Title = *c.title
	}
	if c.description != nil {
		task.Description = *c.description
	}
	if c.due != nil {
		loc, ok := location(cfg, errOut)
		if !ok {
			return exitcode.AuthError
		}
		due, err := parseDate(*c.due, now(), loc)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		task.DueDate = due
	}
	if c.remind != nil {
		task.ReminderSet = *c.remind
	}

	svc.UpdateTask(ctx, task)
	if updated, ok := svc.TaskByID(task.ID); ok && updated.ReminderSet && updated.NotificationID == "" {
		fmt.Fprintln(errOut, "warning: reminder not scheduled")
	}
	warnIfDirty(svc, errOut)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// optionalBool is a boolean flag that records whether it was given.
type optionalBool struct {
	target **bool
}

func (b *optionalBool) String() string {
	if b.target == nil || *b.target == nil {
		return ""
	}
	return strconv.FormatBool(**b.target)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*b.target = &v
	return nil
}

func (b *optionalBool) IsBoolFlag() bool { return true }
