// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskscreen/internal/commands"
	"taskscreen/internal/config"
	"taskscreen/internal/exitcode"
	"taskscreen/internal/logging"
	"taskscreen/internal/seed"
	"taskscreen/internal/service"
)

// DefaultCommand runs when no command is given.
const DefaultCommand = "run"

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	connect  seed.Connector
}

// NewDispatcher creates a new dispatcher with the given registry and the
// connector used by the google seed source. connect may be nil, which
// makes the google source unavailable.
func NewDispatcher(registry *commands.Registry, connect seed.Connector) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		connect:  connect,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	// No args -> open the screen
	if len(args) == 0 {
		return d.dispatch(ctx, DefaultCommand, nil, in, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], in, out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, in, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir, seedSource, seedFile string
	var quiet, debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&seedSource, "seed", "", "")
	fs.StringVar(&seedFile, "seed-file", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// A leading dash left over means the flag parser stopped early
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if seedFile != "" {
		cfg.Seed.Source = config.SeedFile
		cfg.Seed.File = seedFile
	}
	if seedSource != "" {
		cfg.Seed.Source = strings.ToLower(seedSource)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	logger, closer, err := logging.New(cfg, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	defer closer.Close()

	env := &commands.Env{
		Config: cfg,
		Logger: logger,
		In:     in,
		Out:    out,
		ErrOut: errOut,
	}

	if cmd.NeedsSeed() {
		code, ok := d.loadSeed(ctx, env)
		if !ok {
			return code
		}
	}

	logger.Debug("dispatching command", "command", cmd.Name(), "seed", cfg.Seed.Source)
	return cmd.Run(ctx, env, positionalArgs)
}

// loadSeed fills env.Seed from the configured source. On failure it
// reports the error and returns the exit code to use.
func (d *Dispatcher) loadSeed(ctx context.Context, env *commands.Env) (int, bool) {
	cfg, errOut := env.Config, env.ErrOut

	provider, err := seed.ForConfig(cfg, d.connect)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError, false
	}

	tasks, err := provider.Load(ctx)
	if err != nil {
		if cfg.Seed.Source != config.SeedGoogle {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.UserError, false
		}
		if errors.Is(err, service.ErrAuth) {
			fmt.Fprintf(errOut, "error: auth error: %s\n", err)
			return exitcode.AuthError, false
		}
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return exitcode.BackendError, false
	}

	env.Logger.Debug("seed loaded", "source", cfg.Seed.Source, "tasks", len(tasks))
	env.Seed = tasks
	return exitcode.Success, true
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		return errStr
	}
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	}
	return errStr
}
