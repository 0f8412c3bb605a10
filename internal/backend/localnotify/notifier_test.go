package localnotify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"timemgr/internal/service"
	"timemgr/internal/testutil"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func newTestNotifier(storage *testutil.FakeStorage) *Notifier {
	return New(storage,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return testNow }),
	)
}

func notification(id int, at time.Time) service.Notification {
	return service.Notification{ID: id, Title: "Task Reminder", Body: "Reminder: x is due soon", At: at, TaskID: "task-x"}
}

func TestScheduleCancel(t *testing.T) {
	n := newTestNotifier(testutil.NewFakeStorage())
	ctx := context.Background()

	if err := n.Schedule(ctx, notification(2, testNow.Add(2*time.Hour))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.Schedule(ctx, notification(1, testNow.Add(time.Hour))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err := n.Pending(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 2 || pending[0].ID != 1 || pending[1].ID != 2 {
		t.Fatalf("expected ids [1 2] by fire time, got %v", pending)
	}
	if pending[0].TaskID != "task-x" {
		t.Errorf("expected payload to round-trip, got %q", pending[0].TaskID)
	}

	if err := n.Cancel(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Cancelling twice or cancelling an unknown id is fine.
	if err := n.Cancel(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.Cancel(ctx, 99); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, _ = n.Pending(ctx)
	if len(pending) != 1 || pending[0].ID != 2 {
		t.Errorf("expected only id 2 pending, got %v", pending)
	}
}

func TestSchedule_ReplacesSameID(t *testing.T) {
	n := newTestNotifier(testutil.NewFakeStorage())
	ctx := context.Background()

	n.Schedule(ctx, notification(1, testNow.Add(time.Hour)))
	n.Schedule(ctx, notification(1, testNow.Add(3*time.Hour)))

	pending, _ := n.Pending(ctx)
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending, got %d", len(pending))
	}
	if !pending[0].At.Equal(testNow.Add(3 * time.Hour)) {
		t.Errorf("expected replaced fire time, got %v", pending[0].At)
	}
}

func TestDeliver_OnlyDue(t *testing.T) {
	n := newTestNotifier(testutil.NewFakeStorage())
	ctx := context.Background()

	n.Schedule(ctx, notification(3, testNow.Add(time.Minute)))
	n.Schedule(ctx, notification(2, testNow))
	n.Schedule(ctx, notification(1, testNow.Add(-time.Hour)))

	var got []int
	count, err := n.Deliver(ctx, testNow, func(sn service.Notification) { got = append(got, sn.ID) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 || len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("expected ids [1 2] delivered, got %v (count %d)", got, count)
	}

	// Delivered notifications are gone.
	count, _ = n.Deliver(ctx, testNow, func(service.Notification) { t.Error("unexpected redelivery") })
	if count != 0 {
		t.Errorf("expected nothing left to deliver, got %d", count)
	}
	pending, _ := n.Pending(ctx)
	if len(pending) != 1 || pending[0].ID != 3 {
		t.Errorf("expected id 3 pending, got %v", pending)
	}
}

func TestLoad_CorruptQueueStartsOver(t *testing.T) {
	storage := testutil.NewFakeStorage()
	storage.Put(PendingKey, "{nope")
	n := newTestNotifier(storage)

	if err := n.Schedule(context.Background(), notification(1, testNow.Add(time.Hour))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pending, _ := n.Pending(context.Background())
	if len(pending) != 1 {
		t.Errorf("expected 1 pending, got %d", len(pending))
	}
}

func TestSchedule_StorageError(t *testing.T) {
	storage := testutil.NewFakeStorage()
	storage.SetErr = errors.New("disk full")
	n := newTestNotifier(storage)

	if err := n.Schedule(context.Background(), notification(1, testNow.Add(time.Hour))); err == nil {
		t.Error("expected error when storage write fails")
	}
}

func TestWatch_DeliversImmediatelyAndStops(t *testing.T) {
	n := newTestNotifier(testutil.NewFakeStorage())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n.Schedule(ctx, notification(1, testNow.Add(-time.Minute)))

	delivered := make(chan service.Notification, 1)
	done := make(chan error, 1)
	go func() {
		done <- n.Watch(ctx, func(sn service.Notification) { delivered <- sn })
	}()

	select {
	case sn := <-delivered:
		if sn.ID != 1 {
			t.Errorf("expected id 1, got %d", sn.ID)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
