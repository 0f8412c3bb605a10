package taskstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"timemgr/internal/service"
)

const (
	// ReminderLead is how long before the due time a reminder fires.
	ReminderLead = 30 * time.Minute

	// ReminderTitle is the title of every reminder notification.
	ReminderTitle = "Task Reminder"
)

// ReminderBody returns the notification body for a task title.
func ReminderBody(title string) string {
	return fmt.Sprintf("Reminder: %s is due soon", title)
}

// scheduleReminder asks the notifier for an alert ReminderLead before the
// task is due and records its id on t. Fire times that are not in the future
// are skipped. Caller holds s.mu.
func (s *Store) scheduleReminder(ctx context.Context, t *service.Task) {
	if s.notifier == nil {
		s.log.Debug("no notifier configured, reminder skipped", "task", t.ID)
		return
	}

	at := t.DueDate.Add(-ReminderLead)
	now := s.now()
	if !at.After(now) {
		s.log.Debug("reminder time already passed", "task", t.ID, "at", at)
		return
	}

	n := service.Notification{
		ID:     s.ids.next(now),
		Title:  ReminderTitle,
		Body:   ReminderBody(t.Title),
		At:     at,
		TaskID: t.ID,
	}
	if err := s.notifier.Schedule(ctx, n); err != nil {
		s.log.Error("schedule reminder", "task", t.ID, "error", err)
		return
	}
	t.NotificationID = strconv.Itoa(n.ID)
	s.log.Debug("scheduled reminder", "task", t.ID, "notification", n.ID, "at", at)
}

// cancelReminder cancels a previously scheduled alert. Caller holds s.mu.
func (s *Store) cancelReminder(ctx context.Context, notificationID string) {
	if s.notifier == nil {
		return
	}
	id, err := strconv.Atoi(notificationID)
	if err != nil {
		s.log.Warn("invalid notification id", "notification", notificationID, "error", err)
		return
	}
	if err := s.notifier.Cancel(ctx, id); err != nil {
		s.log.Error("cancel reminder", "notification", id, "error", err)
		return
	}
	s.log.Debug("cancelled reminder", "notification", id)
}
