package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"timemgr/internal/config"
	"timemgr/internal/exitcode"
	"timemgr/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "timemgr help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText(DefaultRegistry))
	return exitcode.Success
}

// helpText renders usage for every command in r.
func helpText(r *Registry) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  timemgr                  List all tasks\n")
	for _, cmd := range r.All() {
		fmt.Fprintf(&b, "  %s\n      %s\n", cmd.Usage(), cmd.Synopsis())
	}
	b.WriteString(helpFooter)
	return b.String()
}

const helpFooter = `
A <ref> is a task id or its number in 'timemgr list'.
Dates: YYYY-MM-DD, YYYY-MM-DD HH:MM, RFC 3339, today, tomorrow.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
