package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/exitcode"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd implements the whoami command.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Print the logged-in user" }
func (c *WhoamiCmd) Usage() string     { return "todoctl whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	user, ok := env.Store.Current()
	if !ok {
		fmt.Fprintln(errOut, "error: not logged in (run: todoctl login)")
		return exitcode.AuthError
	}
	fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
	return exitcode.Success
}
