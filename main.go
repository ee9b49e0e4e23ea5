package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idelchi/dusage/internal/cli"
)

var version = "unknown - unofficial & generated by unknown"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := cli.New(version).Execute(ctx)

	stop()

	if err != nil {
		if !errors.Is(err, cli.ErrIncomplete) {
			fmt.Fprintf(os.Stderr, "dusage: %v\n", err)
		}

		os.Exit(1)
	}
}
