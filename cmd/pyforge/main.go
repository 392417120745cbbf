package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pyforge/internal/cli"
)

func main() {
	// Cancellation lets an interrupted install clean up its partial root.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx)
}
