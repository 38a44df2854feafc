// Package cli handles command-line parsing and dispatch.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"todoctl/internal/api"
	"todoctl/internal/commands"
	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/session"
)

// ServiceFactory creates a Service for dispatch. Tests inject fakes
// here; the real binary wires the REST backend.
type ServiceFactory func(cfg *config.Config, client *api.Client, log *zap.Logger) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var apiURL string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&apiURL, "api", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		errStr := err.Error()

		// Check for missing flag value
		if strings.Contains(errStr, "needs a value") || strings.Contains(errStr, "flag needs an argument") {
			if i := strings.LastIndex(errStr, ":"); i >= 0 {
				flagName := strings.TrimSpace(errStr[i+1:])
				fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
				return exitcode.UserError
			}
		}

		// Check for unknown flag
		if strings.HasPrefix(errStr, "flag provided but not defined:") {
			flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
			fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
			return exitcode.UserError
		}

		fmt.Fprintf(errOut, "error: %s\n", errStr)
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir, apiURL)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	log := newLogger(debug, errOut)
	defer func() { _ = log.Sync() }()

	client := api.New(cfg.BaseURL, log)

	var svc service.Service
	if d.factory != nil {
		svc, err = d.factory(cfg, client, log)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	store := session.NewStore(cfg, client, log)

	if cmd.NeedsAuth() {
		if !cfg.HasToken() {
			fmt.Fprintf(errOut, "error: not logged in (run: todoctl login)\n")
			return exitcode.AuthError
		}
		if err := store.Load(ctx, svc); err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.BackendError
		}
		// A rejected token is cleared by Load; the session comes back
		// empty rather than failing.
		if _, ok := store.Current(); !ok {
			fmt.Fprintf(errOut, "error: session expired (run: todoctl login)\n")
			return exitcode.AuthError
		}
	}

	env := &commands.Env{
		Cfg:   cfg,
		Store: store,
		Svc:   svc,
		Log:   log,
		Stdin: os.Stdin,
	}

	return cmd.Run(ctx, env, positionalArgs, out, errOut)
}

// newLogger builds the CLI logger: console debug output on errOut
// when --debug is set, otherwise a no-op logger.
func newLogger(debug bool, errOut io.Writer) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(errOut),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}
