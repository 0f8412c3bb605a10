package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"timemgr/internal/backend"
	"timemgr/internal/backend/localnotify"
	"timemgr/internal/config"
	"timemgr/internal/exitcode"
	"timemgr/internal/output"
	"timemgr/internal/service"
)

func init() {
	Register(&WatchCmd{})
}

// WatchCmd implements the watch command. It prints local reminders as they
// fall due until interrupted.
type WatchCmd struct{}

func (c *WatchCmd) Name() string      { return "watch" }
func (c *WatchCmd) Aliases() []string { return nil }
func (c *WatchCmd) Synopsis() string  { return "Print reminders as they fall due" }
func (c *WatchCmd) Usage() string     { return "timemgr watch [common flags]" }
func (c *WatchCmd) NeedsStore() bool  { return false }

func (c *WatchCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WatchCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if cfg.Notifier != config.NotifierLocal {
		fmt.Fprintf(errOut, "error: watch requires notifier: %s (configured: %s)\n", config.NotifierLocal, cfg.Notifier)
		return exitcode.UserError
	}
	loc, ok := location(cfg, errOut)
	if !ok {
		return exitcode.AuthError
	}

	storage, err := backend.OpenStorage(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	if closer, ok := storage.(io.Closer); ok {
		defer closer.Close()
	}

	if !cfg.Quiet {
		fmt.Fprintln(errOut, "watching for reminders (Ctrl-C to stop)")
	}

	var mu sync.Mutex
	notifier := localnotify.New(storage, localnotify.WithLogger(slog.Default()))
	err = notifier.Watch(ctx, func(n service.Notification) {
		mu.Lock()
		defer mu.Unlock()
		output.FormatNotification(out, n, loc)
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
