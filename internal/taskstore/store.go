// Package taskstore keeps the task collection consistent with durable storage
// and with the reminder notifier.
package taskstore

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"timemgr/internal/service"
)

const (
	// TasksKey is the storage key holding the whole serialized collection.
	TasksKey = "tasks"

	// weekDays is the length of the WeeklyTasks window.
	weekDays = 7
)

// Store is the authoritative in-memory task collection.
// Every mutation writes the whole collection back to storage.
type Store struct {
	mu       sync.Mutex
	storage  service.Storage
	notifier service.Notifier
	log      *slog.Logger
	now      func() time.Time
	loc      *time.Location

	tasks  []service.Task
	ids    idSource
	dirty  bool
	closed bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides the time source (for testing).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the location used to truncate due dates to calendar days.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.loc = loc }
}

// Open builds a Store and loads the collection from storage.
// A missing, unreadable or malformed collection yields an empty store.
// notifier may be nil, in which case reminders are never scheduled.
func Open(ctx context.Context, storage service.Storage, notifier service.Notifier, opts ...Option) *Store {
	s := &Store{
		storage:  storage,
		notifier: notifier,
		log:      slog.Default(),
		now:      time.Now,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tasks = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []service.Task {
	value, ok, err := s.storage.Get(ctx, TasksKey)
	if err != nil {
		s.log.Error("load tasks", "error", err)
		return nil
	}
	if !ok {
		s.log.Debug("no tasks in storage, starting empty")
		return nil
	}
	tasks, err := Decode(value)
	if err != nil {
		s.log.Error("parse stored tasks", "error", err)
		return nil
	}
	s.log.Debug("loaded tasks", "count", len(tasks))
	return tasks
}

// save writes the whole collection. Caller holds s.mu.
func (s *Store) save(ctx context.Context) {
	value, err := Encode(s.tasks)
	if err == nil {
		err = s.storage.Set(ctx, TasksKey, value)
	}
	if err != nil {
		s.dirty = true
		s.log.Error("save tasks", "error", err)
		return
	}
	s.dirty = false
	s.log.Debug("saved tasks", "count", len(s.tasks))
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// AllTasks returns a copy of every task in insertion order.
func (s *Store) AllTasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]service.Task, len(s.tasks))
	copy(result, s.tasks)
	return result
}

// TaskByID returns the first task with the given id.
func (s *Store) TaskByID(id string) (service.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return service.Task{}, false
}

// DailyTasks returns tasks whose due date falls on the same calendar day as
// date. Both sides are truncated in the store's location.
func (s *Store) DailyTasks(date time.Time) []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.truncateDay(date)
	var result []service.Task
	for _, t := range s.tasks {
		if s.truncateDay(t.DueDate).Equal(day) {
			result = append(result, t)
		}
	}
	return result
}

// WeeklyTasks returns tasks due in [start, start+7 days), compared at full
// timestamp precision.
func (s *Store) WeeklyTasks(start time.Time) []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	end := start.AddDate(0, 0, weekDays)
	var result []service.Task
	for _, t := range s.tasks {
		if !t.DueDate.Before(start) && t.DueDate.Before(end) {
			result = append(result, t)
		}
	}
	return result
}

func (s *Store) truncateDay(t time.Time) time.Time {
	y, m, d := t.In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

// AddTask creates a task, schedules its reminder when requested, appends it
// and persists the collection. The returned task carries the notification id
// if scheduling succeeded.
func (s *Store) AddTask(ctx context.Context, title, description string, due time.Time, reminderSet bool) service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := service.Task{
		ID:          newTaskID(),
		Title:       title,
		Description: description,
		DueDate:     due,
		ReminderSet: reminderSet,
	}
	if t.ReminderSet {
		s.scheduleReminder(ctx, &t)
	}

	s.tasks = append(s.tasks, t)
	s.save(ctx)
	return t
}

// UpdateTask replaces the stored task carrying updated.ID. Unknown ids are
// ignored. The reminder is rebuilt only when the title, due date or
// reminder flag changed; otherwise the stored notification id is kept.
func (s *Store) UpdateTask(ctx context.Context, updated service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(updated.ID)
	if i < 0 {
		return
	}
	old := s.tasks[i]

	if reminderChanged(old, updated) {
		if old.NotificationID != "" {
			s.cancelReminder(ctx, old.NotificationID)
		}
		updated.NotificationID = ""
		if updated.ReminderSet {
			s.scheduleReminder(ctx, &updated)
		}
	} else {
		updated.NotificationID = old.NotificationID
	}

	s.tasks[i] = updated
	s.save(ctx)
}

func reminderChanged(old, updated service.Task) bool {
	return old.ReminderSet != updated.ReminderSet ||
		!old.DueDate.Equal(updated.DueDate) ||
		old.Title != updated.Title
}

// DeleteTask cancels the task's reminder, if any, and removes the task.
func (s *Store) DeleteTask(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}
	if nid := s.tasks[i].NotificationID; nid != "" {
		s.cancelReminder(ctx, nid)
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.save(ctx)
}

// ToggleTaskCompletion flips the completed flag. Reminders are not touched.
func (s *Store) ToggleTaskCompletion(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.save(ctx)
}

// Dirty reports whether the in-memory collection is ahead of storage.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Close closes the storage backend if it holds resources.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if c, ok := s.storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var _ service.Service = (*Store)(nil)
