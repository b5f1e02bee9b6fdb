package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vantagedating/adminctl/internal/authz"
	"github.com/vantagedating/adminctl/internal/backend"
)

func newProfilesCommand(r *root) *cobra.Command {
	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "Browse member dating profiles",
	}
	profilesCmd.AddCommand(newProfilesListCommand(r), newProfilesShowCommand(r))
	return profilesCmd
}

func newProfilesListCommand(r *root) *cobra.Command {
	var filter, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List member profiles",
		Example: `  adminctl profiles list --filter verified
  adminctl profiles list --search baker`,
		Args: cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			f, err := backend.ParseUserFilter(filter)
			if err != nil {
				return err
			}
			if _, err := app.Require(cmd.Context(), authz.PermViewUsers); err != nil {
				return err
			}

			profiles, err := app.Client.ListProfiles(cmd.Context(), f)
			if err != nil {
				return err
			}
			return app.Render(profilesView(matchProfiles(profiles, search)))
		}),
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "filter: "+strings.Join(backend.UserFilters(), ", "))
	cmd.Flags().StringVar(&search, "search", "", "only show profiles whose name, email or bio contains this text")
	return cmd
}

// matchProfiles keeps profiles whose first name, last name, email or bio
// contains term, ignoring case.
func matchProfiles(profiles []backend.MemberProfile, term string) []backend.MemberProfile {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return profiles
	}
	matched := make([]backend.MemberProfile, 0, len(profiles))
	for _, p := range profiles {
		for _, field := range []string{p.FirstName, p.LastName, p.Email(), p.Bio} {
			if strings.Contains(strings.ToLower(field), term) {
				matched = append(matched, p)
				break
			}
		}
	}
	return matched
}

func newProfilesShowCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show the full profile of a member",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(cmd *cobra.Command, app *App, args []string) error {
			if _, err := app.Require(cmd.Context(), authz.PermViewUsers); err != nil {
				return err
			}
			profile, err := app.Client.GetProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.Render(profileView{profile})
		}),
	}
}
