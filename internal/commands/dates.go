package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"timemgr/internal/config"
)

// dateLayouts are the accepted input layouts for dates, tried in order.
var dateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02",
}

// parseDate parses s in loc. "today" and "tomorrow" name the start of those
// days.
func parseDate(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "today":
		return startOfDay(now, loc), nil
	case "tomorrow":
		return startOfDay(now, loc).AddDate(0, 0, 1), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %s (use YYYY-MM-DD [HH:MM])", s)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// now is the clock used for "today" and default dates.
var now = time.Now

// location returns the configured time zone, reporting a config error on
// errOut when it cannot be loaded.
func location(cfg *config.Config, errOut io.Writer) (*time.Location, bool) {
	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, false
	}
	return loc, true
}
