package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"resumelens/internal/cli"
	"resumelens/internal/errors"
)

func main() {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Configuration and logging are set up by the root command once flags are parsed
	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error (%s): %v\n", errors.TypeOf(err), err)
		os.Exit(1)
	}
}
