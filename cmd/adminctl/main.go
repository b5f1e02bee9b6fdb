package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vantagedating/adminctl/internal/cmd"
)

func main() {
	// Cancel in-flight backend calls on Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cmd.Run(ctx, os.Args[1:], cmd.Deps{})
	stop()
	os.Exit(code)
}
