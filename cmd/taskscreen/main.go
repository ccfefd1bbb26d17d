// Package main is the entry point for the taskscreen CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskscreen/internal/backend/googletasks"
	"taskscreen/internal/cli"
	"taskscreen/internal/commands"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// The google seed source connects through the stored OAuth token
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, googletasks.Connect)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(code)
}
