package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todoctl/internal/exitcode"
	"todoctl/internal/tasks"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "todoctl add <text...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	text := strings.Join(args, " ")

	ctrl := tasks.NewController(env.Svc, env.Store, nil, env.Log)
	ctrl.SetPending(text)

	if err := ctrl.Add(ctx); err != nil {
		if errors.Is(err, tasks.ErrEmptyText) {
			fmt.Fprintln(errOut, "error: task text required")
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !env.Cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
