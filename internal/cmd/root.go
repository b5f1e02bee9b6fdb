// Package cmd implements the adminctl command tree.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vantagedating/adminctl/internal/errors"
	"github.com/vantagedating/adminctl/internal/exitcode"
	"github.com/vantagedating/adminctl/internal/ux"
)

// root owns the per-invocation state shared by every subcommand.
type root struct {
	deps Deps
	app  *App
}

// appFor builds the App on first use so commands such as version work
// without a valid configuration.
func (r *root) appFor(cmd *cobra.Command) (*App, error) {
	if r.app != nil {
		return r.app, nil
	}
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return nil, err
	}
	app, err := newApp(cmd.Context(), cc, r.deps)
	if err != nil {
		return nil, err
	}
	r.app = app
	return app, nil
}

// run adapts an App-aware handler to cobra's RunE.
func (r *root) run(fn func(cmd *cobra.Command, app *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := r.appFor(cmd)
		if err != nil {
			return err
		}
		return fn(cmd, app, args)
	}
}

// finish records a failed command and releases the App.
func (r *root) finish(cmd *cobra.Command, err error) error {
	if r.app == nil {
		return err
	}
	if err != nil && cmd != nil {
		code := string(errors.GetCode(err))
		if code == "" {
			code = "none"
		}
		r.app.Metrics.RecordCommandError(cmd.CommandPath(), code)
		r.app.Logger.WithError(err).Debug("command failed", "command", cmd.CommandPath())
	}
	if closeErr := r.app.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	r.app = nil
	return err
}

// NewRootCommand builds the full command tree.
func NewRootCommand(deps Deps) *cobra.Command {
	r := &root{deps: deps.withDefaults()}

	rootCmd := &cobra.Command{
		Use:   "adminctl",
		Short: "Vantage Dating administration console",
		Long: `adminctl is the operator console for the Vantage Dating backend.
It signs operators in, keeps their session between invocations and gates
every action on the operator's role: super admins manage system users and
edit members, admins moderate reports and content, viewers browse the
member directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(r.deps.Stdout)
	rootCmd.SetErr(r.deps.Stderr)
	addGlobalFlags(rootCmd)

	rootCmd.AddCommand(
		newVersionCommand(r),
		newConfigCommand(r),
		newDoctorCommand(r),
		newAuthCommand(r),
		newDashboardCommand(r),
		newUsersCommand(r),
		newProfilesCommand(r),
		newAdminsCommand(r),
		newReportsCommand(r),
		newContentCommand(r),
		newCatalogCommand(r),
		newStatsCommand(r),
		newSettingsCommand(r),
	)

	// Wrap every RunE so the App is closed whichever command ran.
	wrapFinish(rootCmd, r)
	return rootCmd
}

func wrapFinish(cmd *cobra.Command, r *root) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			return r.finish(c, run(c, args))
		}
	}
	for _, sub := range cmd.Commands() {
		wrapFinish(sub, r)
	}
}

// Execute runs the command tree with args and returns the error.
func Execute(ctx context.Context, args []string, deps Deps) error {
	rootCmd := NewRootCommand(deps)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// ExecuteContext runs adminctl with the process arguments.
func ExecuteContext(ctx context.Context) error {
	return Execute(ctx, os.Args[1:], Deps{})
}

// Run executes args, prints any error to stderr and returns the exit code.
func Run(ctx context.Context, args []string, deps Deps) int {
	deps = deps.withDefaults()
	err := Execute(ctx, args, deps)
	if err == nil {
		return exitcode.Success
	}
	fmt.Fprintln(deps.Stderr, ux.RenderError(err, noColorRequested(args)))
	return exitcode.DetermineExitCode(err)
}

func noColorRequested(args []string) bool {
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	for _, a := range args {
		if a == "--no-color" || strings.HasPrefix(a, "--no-color=true") {
			return true
		}
	}
	return false
}
