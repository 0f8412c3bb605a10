package testutil

import (
	"context"
	"sync"

	"timemgr/internal/service"
)

// FakeNotifier records scheduled and cancelled notifications.
type FakeNotifier struct {
	mu        sync.RWMutex
	pending   map[int]service.Notification
	scheduled []service.Notification
	cancelled []int

	// Error injection for testing
	ScheduleErr error
	CancelErr   error
}

// NewFakeNotifier creates a FakeNotifier with nothing scheduled.
func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{pending: make(map[int]service.Notification)}
}

// Schedule implements service.Notifier.
func (f *FakeNotifier) Schedule(ctx context.Context, n service.Notification) error {
	if f.ScheduleErr != nil {
		return f.ScheduleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending[n.ID] = n
	f.scheduled = append(f.scheduled, n)
	return nil
}

// Cancel implements service.Notifier.
func (f *FakeNotifier) Cancel(ctx context.Context, id int) error {
	if f.CancelErr != nil {
		return f.CancelErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pending, id)
	f.cancelled = append(f.cancelled, id)
	return nil
}

// Scheduled returns every successfully scheduled notification in call order.
func (f *FakeNotifier) Scheduled() []service.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Notification, len(f.scheduled))
	copy(result, f.scheduled)
	return result
}

// Cancelled returns every cancelled id in call order.
func (f *FakeNotifier) Cancelled() []int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]int, len(f.cancelled))
	copy(result, f.cancelled)
	return result
}

// Pending returns the notification with id if it is scheduled and not cancelled.
func (f *FakeNotifier) Pending(id int) (service.Notification, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n, ok := f.pending[id]
	return n, ok
}
