// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"timemgr/internal/backend/googlecalendar"
	"timemgr/internal/service"
	"timemgr/internal/taskstore"
)

const (
	// DayHeaderSeparator is the separator line around a day section.
	DayHeaderSeparator = "------------"

	// DateTimeLayout is the layout used for due dates and reminder times.
	DateTimeLayout = "2006-01-02 15:04"

	// DayLayout is the layout used for day section headers.
	DayLayout = "Mon 2006-01-02"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {DUE}  {TITLE}\n", with a trailing " *" when a
// reminder is scheduled.
func FormatTask(w io.Writer, num int, task service.Task, loc *time.Location) {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	line := fmt.Sprintf("%4d  %s %s  %s", num, box, task.DueDate.In(loc).Format(DateTimeLayout), normalizeTitle(task.Title))
	if task.NotificationID != "" {
		line += " *"
	}
	fmt.Fprintln(w, line)
}

// FormatDayHeader formats the header of a day section in the week view.
func FormatDayHeader(w io.Writer, day time.Time) {
	fmt.Fprintln(w, DayHeaderSeparator)
	fmt.Fprintln(w, day.Format(DayLayout))
	fmt.Fprintln(w, DayHeaderSeparator)
}

// FormatTaskDetail prints every field of a task.
func FormatTaskDetail(w io.Writer, task service.Task, loc *time.Location) {
	completed := "no"
	if task.Completed {
		completed = "yes"
	}

	reminder := "off"
	switch {
	case task.NotificationID != "":
		reminder = task.DueDate.Add(-taskstore.ReminderLead).In(loc).Format(DateTimeLayout)
	case task.ReminderSet:
		reminder = "not scheduled"
	}

	fmt.Fprintf(w, "id:          %s\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Title))
	if task.Description != "" {
		fmt.Fprintf(w, "description: %s\n", task.Description)
	}
	fmt.Fprintf(w, "due:         %s\n", task.DueDate.In(loc).Format(DateTimeLayout))
	fmt.Fprintf(w, "completed:   %s\n", completed)
	fmt.Fprintf(w, "reminder:    %s\n", reminder)
}

// FormatNotification formats a delivered reminder.
func FormatNotification(w io.Writer, n service.Notification, loc *time.Location) {
	fmt.Fprintf(w, "%s  %s: %s\n", n.At.In(loc).Format(DateTimeLayout), n.Title, n.Body)
}

// FormatCalendar formats a calendar name for the calendars command.
func FormatCalendar(w io.Writer, cal googlecalendar.Calendar) {
	title := normalizeTitle(cal.Summary)
	if cal.Primary {
		title += " [primary]"
	}
	fmt.Fprintln(w, title)
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
