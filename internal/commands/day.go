package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"timemgr/internal/config"
	"timemgr/internal/exitcode"
	"timemgr/internal/output"
	"timemgr/internal/service"
)

func init() {
	Register(&DayCmd{})
	Register(&WeekCmd{})
}

// DayCmd implements the day command.
type DayCmd struct{}

func (c *DayCmd) Name() string      { return "day" }
func (c *DayCmd) Aliases() []string { return []string{"today"} }
func (c *DayCmd) Synopsis() string  { return "List tasks due on a day" }
func (c *DayCmd) Usage() string     { return "timemgr day [date]" }
func (c *DayCmd) NeedsStore() bool  { return true }

func (c *DayCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DayCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	loc, ok := location(cfg, errOut)
	if !ok {
		return exitcode.AuthError
	}
	date, ok := dateArg(args, loc, errOut)
	if !ok {
		return exitcode.UserError
	}

	tasks := svc.DailyTasks(date)
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	pos := positions(svc)
	for _, task := range tasks {
		output.FormatTask(out, pos[task.ID], task, loc)
	}
	return exitcode.Success
}

// WeekCmd implements the week command.
type WeekCmd struct{}

func (c *WeekCmd) Name() string      { return "week" }
func (c *WeekCmd) Aliases() []string { return nil }
func (c *WeekCmd) Synopsis() string  { return "List tasks due in the week starting at a date" }
func (c *WeekCmd) Usage() string     { return "timemgr week [date]" }
func (c *WeekCmd) NeedsStore() bool  { return true }

func (c *WeekCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WeekCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	loc, ok := location(cfg, errOut)
	if !ok {
		return exitcode.AuthError
	}
	start, ok := dateArg(args, loc, errOut)
	if !ok {
		return exitcode.UserError
	}

	tasks := svc.WeeklyTasks(start)
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	// Group by calendar day, keeping list order within a day.
	byDay := make(map[time.Time][]service.Task)
	var days []time.Time
	for _, task := range tasks {
		day := startOfDay(task.DueDate, loc)
		if _, seen := byDay[day]; !seen {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], task)
	}
	sortDays(days)

	pos := positions(svc)
	for _, day := range days {
		output.FormatDayHeader(out, day)
		for _, task := range byDay[day] {
			output.FormatTask(out, pos[task.ID], task, loc)
		}
	}
	return exitcode.Success
}

// dateArg parses the optional date argument, defaulting to the start of today.
func dateArg(args []string, loc *time.Location, errOut io.Writer) (time.Time, bool) {
	if len(args) == 0 {
		return startOfDay(now(), loc), true
	}
	date, err := parseDate(strings.Join(args, " "), now(), loc)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return time.Time{}, false
	}
	return date, true
}

func sortDays(days []time.Time) {
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
}
