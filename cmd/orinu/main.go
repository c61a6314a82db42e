// Package main is the entry point for the orinu CLI
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/goddivor/Orinu-hub/internal/cli"
)

// Set at build time via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	cli.SetVersion(version)
	cli.SetBuildInfo(commit, buildTime)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
