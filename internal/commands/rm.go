package commands

import (
	"bufio"
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
	Register(&RmCmd{})
}

// RmCmd implements the rm command. Deleting is gated twice before any
// request goes out: only the task's author may delete it, and the
// user must confirm (or pass --force).
type RmCmd struct {
	force bool
}

// SetForce skips the confirmation prompt (for testing).
func (c *RmCmd) SetForce(force bool) {
	c.force = force
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "todoctl rm [--force] <n>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	num, err := parseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	in := bufio.NewReader(env.Stdin)
	confirm := func(prompt string) bool {
		if c.force {
			return true
		}
		return promptConfirm(in, errOut, prompt)
	}

	ctrl := tasks.NewController(env.Svc, env.Store, confirm, env.Log)

	task, err := resolveTaskRef(ctx, ctrl, num)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if err := ctrl.Delete(ctx, task.ID); err != nil {
		switch {
		case errors.Is(err, tasks.ErrNotAuthor):
			fmt.Fprintln(errOut, "error: you can only delete your own tasks")
			return exitcode.UserError
		case errors.Is(err, tasks.ErrAborted):
			if !env.Cfg.Quiet {
				fmt.Fprintln(out, "aborted")
			}
			return exitcode.Success
		default:
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
	}

	if !env.Cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
