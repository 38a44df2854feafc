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
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in and store a session token" }
func (c *LoginCmd) Usage() string     { return "todoctl login [common flags] [email]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	// A stored token that still validates means there is nothing to do.
	if env.Cfg.HasToken() {
		if err := env.Store.Load(ctx, env.Svc); err == nil {
			if _, ok := env.Store.Current(); ok {
				if !env.Cfg.Quiet {
					fmt.Fprintln(out, "already logged in")
				}
				return exitcode.Success
			}
		}
	}

	in := bufio.NewReader(env.Stdin)

	var email string
	var err error
	if len(args) > 0 {
		email = args[0]
	} else {
		email, err = promptLine(in, errOut, "email")
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.UserError
		}
	}

	password, err := promptPassword(in, env.Stdin, errOut, "password")
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	flow := auth.NewLoginFlow(env.Svc, env.Store)
	flow.SetEmail(email)
	flow.SetPassword(password)

	if err := flow.Submit(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flow.ErrorMessage())
		if errors.Is(err, auth.ErrValidation) {
			return exitcode.UserError
		}
		return exitcode.AuthError
	}

	if !env.Cfg.Quiet {
		user, _ := env.Store.Current()
		fmt.Fprintf(out, "logged in as %s\n", user.Name)
	}
	return exitcode.Success
}
