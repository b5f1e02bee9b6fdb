package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vantagedating/adminctl/internal/auth"
	"github.com/vantagedating/adminctl/internal/authz"
	"github.com/vantagedating/adminctl/internal/errors"
)

func newAuthCommand(r *root) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in, sign out and inspect the current session",
		Long: `Manage the operator session.

The session token is kept in the configured token store (a credentials file
by default) and revalidated against the backend on every invocation.`,
	}

	authCmd.AddCommand(
		newAuthLoginCommand(r),
		newAuthLogoutCommand(r),
		newAuthStatusCommand(r),
		newAuthWhoamiCommand(r),
		newAuthPermissionsCommand(r),
		newAuthTokenCommand(r),
	)
	return authCmd
}

func newAuthLoginCommand(r *root) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as a console operator",
		Long: `Sign in with an operator email and password.

Missing credentials are prompted for on a terminal. Only super admin, admin
and viewer accounts may sign in.`,
		Example: `  adminctl auth login
  adminctl auth login --email ops@vantage.app`,
		Args: cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			ctx := cmd.Context()
			email = strings.TrimSpace(email)

			if email == "" || password == "" {
				if !app.deps.Interactive() {
					if email == "" {
						return errors.NewInputRequiredError("email")
					}
					return errors.NewInputRequiredError("password")
				}
				creds, err := app.deps.Prompter.Credentials(ctx, email)
				if err != nil {
					return err
				}
				email, password = creds.Email, creds.Password
			}

			result := app.Session.Login(ctx, email, password)
			if !result.Success {
				return loginError(result)
			}

			id := app.Session.Identity()
			app.Logger.Info("logged in", "email", id.Email, "role", id.UserType)
			return app.Notice(
				fmt.Sprintf("Logged in as %s (%s)", id.DisplayName(), id.Role().DisplayName()),
				id,
			)
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "operator email")
	cmd.Flags().StringVar(&password, "password", "", "operator password (prompted when omitted)")
	return cmd
}

// loginError turns an unsuccessful login into a coded error.
func loginError(result auth.LoginResult) error {
	switch result.Message {
	case auth.MessageAdminRequired:
		return errors.New(errors.ErrCodeAdminRequired, result.Message).
			WithSuggestion("Sign in with a super admin, admin or viewer account")
	case auth.MessagePersistFailed:
		return errors.New(errors.ErrCodeStoreWrite, result.Message).
			WithSuggestion("Check the token_store settings or use --ephemeral")
	}
	return errors.New(errors.ErrCodeLoginFailed, result.Message)
}

func newAuthLogoutCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			app.Session.Logout(cmd.Context())
			return app.Notice("Logged out", map[string]bool{"loggedIn": false})
		}),
	}
}

func newAuthStatusCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is active",
		Args:  cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			if err := app.Session.Initialize(cmd.Context()); err != nil {
				return err
			}

			view := statusView{
				LoggedIn:   app.Session.Authenticated(),
				APIURL:     app.Client.BaseURL(),
				TokenStore: app.Config.TokenStore.Backend,
				Identity:   app.Session.Identity(),
			}
			if info, err := app.Session.TokenInfo(); err == nil {
				view.ExpiresAt = info.ExpiresAt
			}
			return app.Render(view)
		}),
	}
}

func newAuthWhoamiCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in operator",
		Args:  cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			session, err := app.RequireSession(cmd.Context())
			if err != nil {
				return err
			}
			return app.Render(identityView{session.Identity()})
		}),
	}
}

func newAuthPermissionsCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "permissions",
		Short: "List what the signed-in operator may do",
		Args:  cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			session, err := app.RequireSession(cmd.Context())
			if err != nil {
				return err
			}
			id := session.Identity()
			return app.Render(grantsView{Role: id.Role(), Grants: authz.Matrix(id)})
		}),
	}
}

func newAuthTokenCommand(r *root) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Show the claims of the session token",
		Long: `Decode the session token without verifying it and print its subject,
issuer and expiry. --show prints the raw token instead.`,
		Args: cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			session, err := app.RequireSession(cmd.Context())
			if err != nil {
				return err
			}
			if show {
				fmt.Fprintln(cmd.OutOrStdout(), session.Token())
				return nil
			}
			info, err := session.TokenInfo()
			if err != nil {
				return err
			}
			return app.Render(tokenView{info})
		}),
	}

	cmd.Flags().BoolVar(&show, "show", false, "print the raw token")
	return cmd
}
