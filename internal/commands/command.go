// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"go.uber.org/zap"

	"todoctl/internal/config"
	"todoctl/internal/service"
	"todoctl/internal/session"
)

// Env bundles what a command needs to run: resolved config, the
// session store, the backend service, a logger, and the input stream
// for interactive prompts.
type Env struct {
	Cfg   *config.Config
	Store *session.Store
	Svc   service.Service
	Log   *zap.Logger
	Stdin io.Reader
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a logged-in
	// session. The dispatcher loads and checks the session before
	// running such commands; unauthenticated invocations are turned
	// away with a pointer at login.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// env is always provided; env.Store holds a user when NeedsAuth()
	// returned true. args contains positional arguments after flag
	// parsing. Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
