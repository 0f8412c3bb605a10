// Package service defines the backend-agnostic types and interfaces for task operations.
package service

import "time"

// Task represents a single task item.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Completed   bool      `json:"completed"`
	ReminderSet bool      `json:"reminderSet"`

	// NotificationID is empty unless a reminder is currently scheduled.
	NotificationID string `json:"notificationId,omitempty"`
}

// Notification is a timed alert handed to a Notifier.
type Notification struct {
	ID     int
	Title  string
	Body   string
	At     time.Time
	TaskID string // payload correlating the alert back to its task
}
