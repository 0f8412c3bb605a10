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
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task and its reminder" }
func (c *RmCmd) Usage() string     { return "timemgr rm <ref>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, ok := resolveOrFail(svc, args, errOut)
	if !ok {
		return exitcode.UserError
	}

	svc.DeleteTask(ctx, task.ID)
	warnIfDirty(svc, errOut)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
