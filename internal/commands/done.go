package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"timemgr/internal/config"
	"timemgr/internal/exitcode"
	"timemgr/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. Running it on a completed task
// reopens it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "timemgr done <ref>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, ok := resolveOrFail(svc, args, errOut)
	if !ok {
		return exitcode.UserError
	}

	svc.ToggleTaskCompletion(ctx, task.ID)
	warnIfDirty(svc, errOut)

	if !cfg.Quiet {
		if task.Completed {
			fmt.Fprintln(out, "reopened")
		} else {
			fmt.Fprintln(out, "ok")
		}
	}
	return exitcode.Success
}
