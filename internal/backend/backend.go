// Package backend opens the storage and notifier selected in the config and
// assembles the task store on top of them.
package backend

import (
	"context"
	"fmt"
	"io"

	"timemgr/internal/backend/googlecalendar"
	"timemgr/internal/backend/kvfile"
	"timemgr/internal/backend/kvsqlite"
	"timemgr/internal/backend/localnotify"
	"timemgr/internal/config"
	"timemgr/internal/service"
	"timemgr/internal/taskstore"
)

// OpenStorage opens the configured storage backend.
// The result implements io.Closer when it holds resources.
func OpenStorage(ctx context.Context, cfg *config.Config) (service.Storage, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		s, err := kvsqlite.Open(ctx, cfg.DatabasePath())
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StorageFile, "":
		return kvfile.New(cfg.TasksPath()), nil
	default:
		return nil, fmt.Errorf("unknown storage: %s", cfg.Storage)
	}
}

// OpenNotifier opens the configured notifier. The local notifier keeps its
// queue in storage. Returns a nil Notifier when reminders are disabled.
func OpenNotifier(ctx context.Context, cfg *config.Config, storage service.Storage) (service.Notifier, error) {
	switch cfg.Notifier {
	case config.NotifierGoogleCalendar:
		c, err := googlecalendar.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.NotifierNone:
		return nil, nil
	case config.NotifierLocal, "":
		return localnotify.New(storage), nil
	default:
		return nil, fmt.Errorf("unknown notifier: %s", cfg.Notifier)
	}
}

// OpenService opens both backends and loads the task store.
func OpenService(ctx context.Context, cfg *config.Config) (service.Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	notifier, err := OpenNotifier(ctx, cfg, storage)
	if err != nil {
		if c, ok := storage.(io.Closer); ok {
			c.Close()
		}
		return nil, err
	}

	return taskstore.Open(ctx, storage, notifier, taskstore.WithLocation(loc)), nil
}
