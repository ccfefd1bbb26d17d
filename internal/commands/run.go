package commands

import (
	"context"
	"flag"
	"fmt"

	"taskscreen/internal/exitcode"
	"taskscreen/internal/lifecycle"
	"taskscreen/internal/screen"
	"taskscreen/internal/store"
)

func init() {
	Register(&RunCmd{})
}

// RunCmd opens the interactive task screen.
type RunCmd struct{}

func (c *RunCmd) Name() string      { return "run" }
func (c *RunCmd) Aliases() []string { return []string{"open"} }
func (c *RunCmd) Synopsis() string  { return "Open the task screen" }
func (c *RunCmd) Usage() string     { return "taskscreen run [common flags]" }
func (c *RunCmd) NeedsSeed() bool   { return true }

func (c *RunCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RunCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(env.ErrOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	phases := lifecycle.NewBroadcaster(lifecycle.Active)
	lifecycle.WatchSignals(ctx, phases)

	st := store.New(env.Seed, phases, store.WithLogger(env.Logger))
	defer st.Dispose()

	sc := screen.New(st, phases, env.Out, env.ErrOut,
		screen.WithQuiet(env.Config.Quiet),
		screen.WithLogger(env.Logger),
	)
	if err := sc.Run(ctx, env.In); err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
