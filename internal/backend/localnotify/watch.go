package localnotify

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"timemgr/internal/service"
)

// WatchSpec is the cron schedule on which Watch polls for due notifications.
const WatchSpec = "* * * * *"

// Watch delivers due notifications once immediately and then every minute
// until ctx is cancelled.
func (n *Notifier) Watch(ctx context.Context, deliver func(service.Notification)) error {
	tick := func() {
		count, err := n.Deliver(ctx, n.now(), deliver)
		if err != nil {
			n.log.Error("deliver notifications", "error", err)
			return
		}
		if count > 0 {
			n.log.Debug("delivered notifications", "count", count)
		}
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(WatchSpec, tick); err != nil {
		return fmt.Errorf("schedule watch: %w", err)
	}

	tick()
	c.Start()
	n.log.Info("watching for reminders", "schedule", WatchSpec)

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
