package commands

import (
	"context"
	"flag"
	"fmt"

	"taskscreen/internal/exitcode"
	"taskscreen/internal/output"
	"taskscreen/internal/seed"
)

func init() {
	Register(&SeedCmd{})
}

// SeedCmd prints the list the screen starts from.
type SeedCmd struct {
	asYAML bool
}

// SetYAML selects YAML output (for testing).
func (c *SeedCmd) SetYAML(v bool) {
	c.asYAML = v
}

func (c *SeedCmd) Name() string      { return "seed" }
func (c *SeedCmd) Aliases() []string { return nil }
func (c *SeedCmd) Synopsis() string  { return "Print the initial task list" }
func (c *SeedCmd) Usage() string     { return "taskscreen seed [common flags] [--yaml]" }
func (c *SeedCmd) NeedsSeed() bool   { return true }

func (c *SeedCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.asYAML, "yaml", false, "")
}

func (c *SeedCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(env.ErrOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if c.asYAML {
		if err := seed.Encode(env.Out, env.Seed); err != nil {
			fmt.Fprintf(env.ErrOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return exitcode.Success
	}

	output.FormatTasks(env.Out, env.Seed)
	return exitcode.Success
}
