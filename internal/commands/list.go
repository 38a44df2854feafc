package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/exitcode"
	"todoctl/internal/output"
	"todoctl/internal/tasks"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todoctl` (no args) and `todoctl list --filter <f>`.
type ListCmd struct {
	filterName string
}

// SetFilterName sets the filter (for testing).
func (c *ListCmd) SetFilterName(name string) {
	c.filterName = name
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todoctl list [--filter all|active|completed]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filterName, "filter", "", "")
	fs.StringVar(&c.filterName, "f", "", "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	filter, err := tasks.ParseFilter(c.filterName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	ctrl := tasks.NewController(env.Svc, env.Store, nil, env.Log)
	ctrl.SetFilter(filter)

	if err := ctrl.Refresh(ctx); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	filtered := ctrl.Filtered()
	if len(filtered) == 0 {
		if !env.Cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	output.FormatTasks(out, filtered)
	if !env.Cfg.Quiet {
		output.FormatStats(out, ctrl.Counts())
	}
	return exitcode.Success
}
