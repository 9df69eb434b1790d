package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	// Configure GOMAXPROCS for container CPU limits. Error ignored:
	// maxprocs.Set only fails on an invalid GOMAXPROCS env value, in which
	// case the Go runtime default applies and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
