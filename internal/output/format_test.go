package output

import (
	"bytes"
	"testing"
	"time"

	"timemgr/internal/backend/googlecalendar"
	"timemgr/internal/service"
)

var due = time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		num  int
		task service.Task
		want string
	}{
		{"open", 1, service.Task{Title: "Dentist", DueDate: due}, "   1  [ ] 2026-10-17 14:00  Dentist\n"},
		{"completed", 12, service.Task{Title: "Dentist", DueDate: due, Completed: true}, "  12  [x] 2026-10-17 14:00  Dentist\n"},
		{"reminder", 3, service.Task{Title: "Dentist", DueDate: due, ReminderSet: true, NotificationID: "7"}, "   3  [ ] 2026-10-17 14:00  Dentist *\n"},
		{"untitled", 1, service.Task{Title: "  ", DueDate: due}, "   1  [ ] 2026-10-17 14:00  (untitled)\n"},
		{"newline", 1, service.Task{Title: "a\nb", DueDate: due}, "   1  [ ] 2026-10-17 14:00  a b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.num, tt.task, time.UTC)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatTask_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	var buf bytes.Buffer
	FormatTask(&buf, 1, service.Task{Title: "Dentist", DueDate: due}, loc)
	want := "   1  [ ] 2026-10-17 16:00  Dentist\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatTaskDetail(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskDetail(&buf, service.Task{
		ID:             "abc",
		Title:          "Dentist",
		Description:    "bring card",
		DueDate:        due,
		ReminderSet:    true,
		NotificationID: "7",
	}, time.UTC)

	want := "id:          abc\n" +
		"title:       Dentist\n" +
		"description: bring card\n" +
		"due:         2026-10-17 14:00\n" +
		"completed:   no\n" +
		"reminder:    2026-10-17 13:30\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatTaskDetail_ReminderStates(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskDetail(&buf, service.Task{ID: "a", Title: "x", DueDate: due, ReminderSet: true}, time.UTC)
	if !bytes.Contains(buf.Bytes(), []byte("reminder:    not scheduled\n")) {
		t.Errorf("expected unscheduled reminder, got %q", buf.String())
	}

	buf.Reset()
	FormatTaskDetail(&buf, service.Task{ID: "a", Title: "x", DueDate: due, Completed: true}, time.UTC)
	if !bytes.Contains(buf.Bytes(), []byte("reminder:    off\n")) {
		t.Errorf("expected reminder off, got %q", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("completed:   yes\n")) {
		t.Errorf("expected completed, got %q", buf.String())
	}
	if bytes.Contains(buf.Bytes(), []byte("description:")) {
		t.Errorf("expected no description line, got %q", buf.String())
	}
}

func TestFormatDayHeader(t *testing.T) {
	var buf bytes.Buffer
	FormatDayHeader(&buf, due)
	want := "------------\nSat 2026-10-17\n------------\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatNotification(t *testing.T) {
	var buf bytes.Buffer
	FormatNotification(&buf, service.Notification{
		ID:    1,
		Title: "Task Reminder",
		Body:  "Reminder: Dentist is due soon",
		At:    due.Add(-30 * time.Minute),
	}, time.UTC)
	want := "2026-10-17 13:30  Task Reminder: Reminder: Dentist is due soon\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatCalendar(t *testing.T) {
	var buf bytes.Buffer
	FormatCalendar(&buf, googlecalendar.Calendar{ID: "p", Summary: "me@example.com", Primary: true})
	FormatCalendar(&buf, googlecalendar.Calendar{ID: "w", Summary: "Work"})
	want := "me@example.com [primary]\nWork\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
