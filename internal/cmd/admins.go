package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vantagedating/adminctl/internal/authz"
	"github.com/vantagedating/adminctl/internal/backend"
	"github.com/vantagedating/adminctl/internal/domain"
	"github.com/vantagedating/adminctl/internal/errors"
)

// assignableRoles are the roles an operator can give from the console.
var assignableRoles = []string{string(domain.RoleAdmin), string(domain.RoleViewer)}

func newAdminsCommand(r *root) *cobra.Command {
	adminsCmd := &cobra.Command{
		Use:     "admins",
		Aliases: []string{"system-users"},
		Short:   "Manage console operators (system users)",
		Long: `Manage the accounts that can sign in to the console.

Only super admins can create, edit or delete system users. Super admin
accounts themselves cannot be deleted or demoted.`,
	}

	adminsCmd.AddCommand(
		newAdminsListCommand(r),
		newAdminsCreateCommand(r),
		newAdminsUpdateCommand(r),
		newAdminsDeleteCommand(r),
	)
	return adminsCmd
}

func newAdminsListCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List system users",
		Args:  cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			if _, err := app.RequireSession(cmd.Context()); err != nil {
				return err
			}
			admins, err := app.Client.ListAdmins(cmd.Context())
			if err != nil {
				return err
			}
			return app.Render(adminsView(admins))
		}),
	}
}

func newAdminsCreateCommand(r *root) *cobra.Command {
	var (
		req  backend.CreateAdminRequest
		role string
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a system user",
		Example: `  adminctl admins create --email kim@vantage.app --password s3cret --first-name Kim --last-name Lee --role viewer`,
		Args:    cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			ctx := cmd.Context()
			if _, err := app.Require(ctx, authz.PermCreateAdminUsers); err != nil {
				return err
			}

			if role == "" {
				if !app.deps.Interactive() {
					return errors.NewInputRequiredError("role")
				}
				picked, err := app.deps.Prompter.Select(ctx, "Role for the new system user", assignableRoles)
				if err != nil {
					return err
				}
				role = picked
			}
			req.Role = domain.Role(role)

			admin, err := app.Client.CreateAdmin(ctx, req)
			if err != nil {
				return err
			}
			app.Logger.Info("system user created", "email", admin.Email, "role", admin.UserType)
			return app.Notice(fmt.Sprintf("Created %s %s", admin.Role().DisplayName(), admin.Email), admin)
		}),
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Email, "email", "", "email address")
	flags.StringVar(&req.Password, "password", "", "initial password")
	flags.StringVar(&req.FirstName, "first-name", "", "first name")
	flags.StringVar(&req.LastName, "last-name", "", "last name")
	flags.StringVar(&role, "role", "", "role: admin or viewer (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newAdminsUpdateCommand(r *root) *cobra.Command {
	var email, password, firstName, lastName, role string

	cmd := &cobra.Command{
		Use:   "update <admin-id>",
		Short: "Edit a system user",
		Long: `Edit a system user. Omitted fields keep their current value and an
omitted --password leaves the password unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: r.run(func(cmd *cobra.Command, app *App, args []string) error {
			ctx := cmd.Context()
			if _, err := app.Require(ctx, authz.PermCreateAdminUsers); err != nil {
				return err
			}

			target, err := app.Client.GetAdmin(ctx, args[0])
			if err != nil {
				return err
			}
			req, err := backend.PrepareAdminUpdate(*target, email, password, firstName, lastName, domain.Role(role))
			if err != nil {
				return err
			}
			if err := app.Client.UpdateAdmin(ctx, target.ID, req); err != nil {
				return err
			}
			app.Logger.Info("system user updated", "id", target.ID)
			return app.Notice(fmt.Sprintf("Updated system user %s", req.Email),
				map[string]string{"id": target.ID, "email": req.Email, "role": string(req.Role)})
		}),
	}

	flags := cmd.Flags()
	flags.StringVar(&email, "email", "", "new email address")
	flags.StringVar(&password, "password", "", "new password")
	flags.StringVar(&firstName, "first-name", "", "new first name")
	flags.StringVar(&lastName, "last-name", "", "new last name")
	flags.StringVar(&role, "role", "", "new role: admin or viewer")
	return cmd
}

func newAdminsDeleteCommand(r *root) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <admin-id>",
		Short: "Delete a system user",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(cmd *cobra.Command, app *App, args []string) error {
			ctx := cmd.Context()
			if _, err := app.Require(ctx, authz.PermDeleteAdminUsers); err != nil {
				return err
			}

			target, err := app.Client.GetAdmin(ctx, args[0])
			if err != nil {
				return err
			}
			if target.Role() == domain.RoleSuperAdmin {
				return errors.NewProtectedAccountError("deleted")
			}
			if err := app.Confirm(ctx, yes, fmt.Sprintf("Delete system user %s?", target.Email)); err != nil {
				return err
			}
			if err := app.Client.DeleteAdmin(ctx, target.ID); err != nil {
				return err
			}
			app.Logger.Info("system user deleted", "id", target.ID, "email", target.Email)
			return app.Notice(fmt.Sprintf("Deleted system user %s", target.Email), map[string]string{"id": target.ID, "deleted": "true"})
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
