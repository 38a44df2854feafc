package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todoctl help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todoctl                                        List all tasks
  todoctl list [common flags] [--filter all|active|completed]
  todoctl add [common flags] <text...>
  todoctl done [common flags] <n>
  todoctl rm [common flags] [--force] <n>
  todoctl ui [common flags]                      Interactive mode
  todoctl login [common flags] [email]
  todoctl register [common flags]
  todoctl logout [common flags]
  todoctl whoami [common flags]
  todoctl help
  todoctl version

Task numbers refer to the rows printed by todoctl list with no filter.

Common flags:
  --config <dir>   Override config directory
  --api <url>      Override API root (default ` + "$TODOCTL_API" + ` or http://localhost:8080/api)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
