// Package service defines the backend-agnostic types and interfaces for task operations.
package service

import (
	"context"
	"time"
)

// Service defines the task operations exposed to the CLI.
// Lookup misses are not errors: they return ok=false or are silent no-ops.
type Service interface {
	// AllTasks returns a copy of every task in insertion order.
	AllTasks() []Task

	// TaskByID returns the first task with the given id.
	TaskByID(id string) (Task, bool)

	// DailyTasks returns tasks due on the same calendar day as date.
	DailyTasks(date time.Time) []Task

	// WeeklyTasks returns tasks due in the week starting at start.
	WeeklyTasks(start time.Time) []Task

	// AddTask creates, stores and returns a new task.
	AddTask(ctx context.Context, title, description string, due time.Time, reminderSet bool) Task

	// UpdateTask replaces the stored task with the same id.
	UpdateTask(ctx context.Context, updated Task)

	// DeleteTask removes a task and cancels its reminder.
	DeleteTask(ctx context.Context, id string)

	// ToggleTaskCompletion flips the completed flag of a task.
	ToggleTaskCompletion(ctx context.Context, id string)

	// Dirty reports whether the last write to storage failed.
	Dirty() bool

	// Close releases the storage backend.
	Close() error
}

// Storage is a durable string key-value store.
// Get returns ok=false when the key has never been set.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Notifier schedules and cancels timed alerts by integer id.
// Cancel must treat unknown or already delivered ids as success.
type Notifier interface {
	Schedule(ctx context.Context, n Notification) error
	Cancel(ctx context.Context, id int) error
}
