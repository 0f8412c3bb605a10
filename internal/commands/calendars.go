package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"timemgr/internal/backend/googlecalendar"
	"timemgr/internal/config"
	"timemgr/internal/exitcode"
	"timemgr/internal/output"
	"timemgr/internal/service"
)

func init() {
	Register(&CalendarsCmd{})
}

// CalendarsCmd implements the calendars command.
type CalendarsCmd struct{}

func (c *CalendarsCmd) Name() string      { return "calendars" }
func (c *CalendarsCmd) Aliases() []string { return nil }
func (c *CalendarsCmd) Synopsis() string  { return "Print Google calendars usable for reminders" }
func (c *CalendarsCmd) Usage() string     { return "timemgr calendars [common flags]" }
func (c *CalendarsCmd) NeedsStore() bool  { return false }

func (c *CalendarsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CalendarsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n", cfg.Dir)
		return exitcode.AuthError
	}
	if !cfg.HasToken() {
		fmt.Fprintln(errOut, "error: not logged in (run: timemgr login)")
		return exitcode.AuthError
	}

	httpClient, err := googlecalendar.HTTPClient(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}
	client, err := googlecalendar.NewWithHTTPClient(ctx, httpClient, googlecalendar.PrimaryCalendar)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	calendars, err := client.ListCalendars(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	for _, cal := range calendars {
		output.FormatCalendar(out, cal)
	}
	return exitcode.Success
}
