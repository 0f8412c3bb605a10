// Package main is the entry point for the timemgr CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"timemgr/internal/backend"
	"timemgr/internal/cli"
	"timemgr/internal/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, backend.OpenService)
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
