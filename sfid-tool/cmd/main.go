package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/weiawesome/wes-io-live/sfid-tool/internal/cli"
)

func main() {
	// Interrupts cancel a running enumeration; ids already written are kept.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
