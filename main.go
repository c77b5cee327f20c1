package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spiffcs/dday/cmd"
	"github.com/spiffcs/dday/internal/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.New().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error("dday failed", "error", err)
		os.Exit(1)
	}
}
