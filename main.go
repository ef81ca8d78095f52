package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hnsearch/internal/commands"
)

func main() {
	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	commands.ExecuteContext(ctx)
}
