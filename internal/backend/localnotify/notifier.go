// Package localnotify implements service.Notifier without a platform
// notification service: pending reminders are kept in storage and delivered
// by a watch loop.
package localnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"timemgr/internal/service"
)

// PendingKey is the storage key holding pending notifications.
const PendingKey = "notifications"

type record struct {
	ID     int       `json:"id"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	At     time.Time `json:"at"`
	TaskID string    `json:"taskId"`
}

func toRecord(n service.Notification) record {
	return record{ID: n.ID, Title: n.Title, Body: n.Body, At: n.At, TaskID: n.TaskID}
}

func (r record) notification() service.Notification {
	return service.Notification{ID: r.ID, Title: r.Title, Body: r.Body, At: r.At, TaskID: r.TaskID}
}

// Notifier stores pending notifications under PendingKey.
type Notifier struct {
	mu      sync.Mutex
	storage service.Storage
	log     *slog.Logger
	now     func() time.Time
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) { n.log = l }
}

// WithClock overrides the time source used by Watch.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

// New creates a Notifier persisting to storage.
func New(storage service.Storage, opts ...Option) *Notifier {
	n := &Notifier{
		storage: storage,
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Schedule implements service.Notifier. A notification with the same id
// replaces the existing one.
func (n *Notifier) Schedule(ctx context.Context, notification service.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	records, err := n.load(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range records {
		if records[i].ID == notification.ID {
			records[i] = toRecord(notification)
			replaced = true
		}
	}
	if !replaced {
		records = append(records, toRecord(notification))
	}
	return n.save(ctx, records)
}

// Cancel implements service.Notifier. Unknown ids are not an error.
func (n *Notifier) Cancel(ctx context.Context, id int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	records, err := n.load(ctx)
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	return n.save(ctx, kept)
}

// Pending returns every notification not yet delivered, ordered by fire time.
func (n *Notifier) Pending(ctx context.Context) ([]service.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	records, err := n.load(ctx)
	if err != nil {
		return nil, err
	}
	sortRecords(records)
	result := make([]service.Notification, len(records))
	for i, r := range records {
		result[i] = r.notification()
	}
	return result, nil
}

// Deliver removes every notification due at or before now and passes it to
// fn in fire-time order. Notifications are removed before fn is called, so
// each is delivered at most once. Returns the number delivered.
func (n *Notifier) Deliver(ctx context.Context, now time.Time, fn func(service.Notification)) (int, error) {
	n.mu.Lock()
	records, err := n.load(ctx)
	if err != nil {
		n.mu.Unlock()
		return 0, err
	}

	var due, rest []record
	for _, r := range records {
		if r.At.After(now) {
			rest = append(rest, r)
		} else {
			due = append(due, r)
		}
	}
	if len(due) == 0 {
		n.mu.Unlock()
		return 0, nil
	}
	if err := n.save(ctx, rest); err != nil {
		n.mu.Unlock()
		return 0, err
	}
	n.mu.Unlock()

	sortRecords(due)
	for _, r := range due {
		fn(r.notification())
	}
	return len(due), nil
}

func (n *Notifier) load(ctx context.Context) ([]record, error) {
	value, ok, err := n.storage.Get(ctx, PendingKey)
	if err != nil {
		return nil, fmt.Errorf("load notifications: %w", err)
	}
	if !ok || value == "" {
		return nil, nil
	}
	var records []record
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		// A corrupt queue must not block scheduling; start over.
		n.log.Warn("discarding unreadable notifications", "error", err)
		return nil, nil
	}
	return records, nil
}

func (n *Notifier) save(ctx context.Context, records []record) error {
	if records == nil {
		records = []record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode notifications: %w", err)
	}
	if err := n.storage.Set(ctx, PendingKey, string(data)); err != nil {
		return fmt.Errorf("save notifications: %w", err)
	}
	return nil
}

func sortRecords(records []record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].At.Before(records[j].At)
	})
}

var _ service.Notifier = (*Notifier)(nil)
