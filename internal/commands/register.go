package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/auth"
	"todoctl/internal/exitcode"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command. It walks the same flow
// the interactive UI uses: name, email (checked for availability
// before going on), then password and confirmation.
type RegisterCmd struct{}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"join"} }
func (c *RegisterCmd) Synopsis() string  { return "Create a new account" }
func (c *RegisterCmd) Usage() string     { return "todoctl register [common flags]" }
func (c *RegisterCmd) NeedsAuth() bool   { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RegisterCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	in := bufio.NewReader(env.Stdin)
	flow := auth.NewRegisterFlow(env.Svc)

	name, err := promptLine(in, errOut, "name")
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	flow.SetName(name)

	email, err := promptLine(in, errOut, "email")
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	flow.SetEmail(email)

	// The email must come back available before asking for a password.
	available, notice := flow.CheckEmail(ctx)
	if !available {
		fmt.Fprintf(errOut, "error: %s\n", notice)
		return exitcode.UserError
	}

	password, err := promptPassword(in, env.Stdin, errOut, "password")
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	flow.SetPassword(password)

	confirm, err := promptPassword(in, env.Stdin, errOut, "confirm password")
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	flow.SetConfirm(confirm)

	if err := flow.Submit(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flow.ErrorMessage())
		if errors.Is(err, auth.ErrValidation) {
			return exitcode.UserError
		}
		return exitcode.BackendError
	}

	if !env.Cfg.Quiet {
		fmt.Fprintln(out, "registered; log in with: todoctl login")
	}
	return exitcode.Success
}
