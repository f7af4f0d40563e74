package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, cli.DefaultDeps(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+apperrors.UserMessage(err))
		stop()
		os.Exit(1)
	}
}
