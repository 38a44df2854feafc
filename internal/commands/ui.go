package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"todoctl/internal/exitcode"
	"todoctl/internal/ui"
)

func init() {
	Register(&UiCmd{})
}

// UiCmd runs the interactive full-screen interface. It does not
// require a session up front: the screens themselves start on login
// when no stored token works.
type UiCmd struct{}

func (c *UiCmd) Name() string      { return "ui" }
func (c *UiCmd) Aliases() []string { return nil }
func (c *UiCmd) Synopsis() string  { return "Open the interactive interface" }
func (c *UiCmd) Usage() string     { return "todoctl ui [common flags]" }
func (c *UiCmd) NeedsAuth() bool   { return false }

func (c *UiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UiCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintln(errOut, "error: ui takes no arguments")
		return exitcode.UserError
	}

	// Best effort restore; a rejected token just lands on the login
	// screen.
	if err := env.Store.Load(ctx, env.Svc); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	app := ui.NewApp(env.Svc, env.Store)
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
