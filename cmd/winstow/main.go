package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MathiasCodes/winstow/internal/domain"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signalContext()
	defer cancel()

	rootCmd := NewRootCommand()
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", domain.UserFacingError(err))
		return exitCodeFor(err)
	}
	return 0
}

// signalContext cancels its context on the first SIGINT/SIGTERM, letting
// the in-flight executor see ctx.Err() on its next filesystem call. There
// is no rollback: the plan is simply abandoned mid-execution, per spec.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}
