package commands

import (
	"context"
	"flag"
	"fmt"

	"taskscreen/internal/exitcode"
)

func init() {
	Register(&HelpCmd{registry: DefaultRegistry})
}

// HelpCmd implements the help command.
type HelpCmd struct {
	registry *Registry
}

// NewHelpCmd creates a help command listing the commands of r.
func NewHelpCmd(r *Registry) *HelpCmd {
	return &HelpCmd{registry: r}
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskscreen help" }
func (c *HelpCmd) NeedsSeed() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string) int {
	fmt.Fprintln(env.Out, "Usage:")
	fmt.Fprintf(env.Out, "  %-44s %s\n", "taskscreen", "Open the task screen (same as run)")
	for _, cmd := range c.registry.All() {
		fmt.Fprintf(env.Out, "  %-44s %s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprint(env.Out, commonFlagsText)
	return exitcode.Success
}

const commonFlagsText = `
Common flags:
  --config <dir>       Override config directory
  --seed <source>      Seed source: builtin, file or google
  --seed-file <path>   Seed from a YAML file (implies --seed file)
  --quiet              Suppress informational output
  --debug              Print debug logs to stderr
`
