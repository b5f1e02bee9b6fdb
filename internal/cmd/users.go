package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vantagedating/adminctl/internal/authz"
	"github.com/vantagedating/adminctl/internal/backend"
)

func newUsersCommand(r *root) *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Browse and manage member accounts",
	}

	usersCmd.AddCommand(
		newUsersListCommand(r),
		newUsersCreateCommand(r),
		newUsersToggleCommand(r, "activate", "Activate a member account", func(app *App, cmd *cobra.Command, id string) error {
			return app.Client.SetUserActive(cmd.Context(), id, true)
		}),
		newUsersToggleCommand(r, "deactivate", "Deactivate a member account", func(app *App, cmd *cobra.Command, id string) error {
			return app.Client.SetUserActive(cmd.Context(), id, false)
		}),
		newUsersToggleCommand(r, "verify", "Mark a member account as verified", func(app *App, cmd *cobra.Command, id string) error {
			return app.Client.SetUserVerified(cmd.Context(), id, true)
		}),
		newUsersToggleCommand(r, "unverify", "Clear the verified mark of a member account", func(app *App, cmd *cobra.Command, id string) error {
			return app.Client.SetUserVerified(cmd.Context(), id, false)
		}),
	)
	return usersCmd
}

func newUsersListCommand(r *root) *cobra.Command {
	var filter, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List member accounts",
		Example: `  adminctl users list --filter unverified
  adminctl users list --search alice -o json`,
		Args: cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			f, err := backend.ParseUserFilter(filter)
			if err != nil {
				return err
			}
			if _, err := app.Require(cmd.Context(), authz.PermViewUsers); err != nil {
				return err
			}

			users, err := app.Client.ListUsers(cmd.Context(), f)
			if err != nil {
				return err
			}
			return app.Render(usersView(matchUsers(users, search)))
		}),
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "filter: "+strings.Join(backend.UserFilters(), ", "))
	cmd.Flags().StringVar(&search, "search", "", "only show users whose name or email contains this text")
	return cmd
}

// matchUsers keeps users whose name or email contains term, ignoring case.
func matchUsers(users []backend.User, term string) []backend.User {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return users
	}
	matched := make([]backend.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Email), term) || strings.Contains(strings.ToLower(u.Name()), term) {
			matched = append(matched, u)
		}
	}
	return matched
}

func newUsersCreateCommand(r *root) *cobra.Command {
	var req backend.CreateUserRequest

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a member account",
		Example: `  adminctl users create --email dana@example.com --password s3cret --first-name Dana --age 27 --gender female`,
		Args:    cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			req.Normalize()
			if err := req.Validate(); err != nil {
				return err
			}
			if _, err := app.Require(cmd.Context(), authz.PermCreateUsers); err != nil {
				return err
			}

			user, err := app.Client.CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			app.Logger.Info("user created", "email", user.Email)
			return app.Notice(fmt.Sprintf("Created user %s", user.Email), user)
		}),
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Email, "email", "", "email address")
	flags.StringVar(&req.Password, "password", "", "initial password")
	flags.StringVar(&req.FirstName, "first-name", "", "first name")
	flags.StringVar(&req.LastName, "last-name", "", "last name")
	flags.IntVar(&req.Age, "age", 0, fmt.Sprintf("age (%d or older)", backend.MinimumAge))
	flags.StringVar(&req.Gender, "gender", "", "gender: "+strings.Join(backend.Genders(), ", "))
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("age")
	return cmd
}

func newUsersToggleCommand(r *root, use, short string, apply func(app *App, cmd *cobra.Command, id string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <user-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(cmd *cobra.Command, app *App, args []string) error {
			if _, err := app.Require(cmd.Context(), authz.PermEditUsers); err != nil {
				return err
			}
			if err := apply(app, cmd, args[0]); err != nil {
				return err
			}
			past := use + "d"
			if strings.HasSuffix(use, "y") {
				past = strings.TrimSuffix(use, "y") + "ied"
			}
			return app.Notice(fmt.Sprintf("User %s %s", args[0], past), map[string]string{"id": args[0], "action": use})
		}),
	}
}
