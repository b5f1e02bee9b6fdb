package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vantagedating/adminctl/internal/authz"
	"github.com/vantagedating/adminctl/internal/backend"
)

func newContentCommand(r *root) *cobra.Command {
	contentCmd := &cobra.Command{
		Use:     "content",
		Aliases: []string{"stories"},
		Short:   "Moderate member stories",
	}

	var filter string
	list := &cobra.Command{
		Use:   "list",
		Short: "List stories",
		Args:  cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			f, err := backend.ParseStoryFilter(filter)
			if err != nil {
				return err
			}
			if _, err := app.Require(cmd.Context(), authz.PermManageContent); err != nil {
				return err
			}
			stories, err := app.Client.ListStories(cmd.Context(), f)
			if err != nil {
				return err
			}
			return app.Render(storiesView(stories))
		}),
	}
	list.Flags().StringVar(&filter, "filter", "all", "filter: all, flagged or active")

	approve := &cobra.Command{
		Use:   "approve <story-id>",
		Short: "Approve a story",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(cmd *cobra.Command, app *App, args []string) error {
			if _, err := app.Require(cmd.Context(), authz.PermManageContent); err != nil {
				return err
			}
			if err := app.Client.ApproveStory(cmd.Context(), args[0]); err != nil {
				return err
			}
			return app.Notice(fmt.Sprintf("Story %s approved", args[0]), map[string]string{"id": args[0], "action": "approve"})
		}),
	}

	var yes bool
	remove := &cobra.Command{
		Use:   "delete <story-id>",
		Short: "Delete a story",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(cmd *cobra.Command, app *App, args []string) error {
			ctx := cmd.Context()
			if _, err := app.Require(ctx, authz.PermManageContent); err != nil {
				return err
			}
			if err := app.Confirm(ctx, yes, fmt.Sprintf("Delete story %s?", args[0])); err != nil {
				return err
			}
			if err := app.Client.DeleteStory(ctx, args[0]); err != nil {
				return err
			}
			app.Logger.Info("story deleted", "id", args[0])
			return app.Notice(fmt.Sprintf("Story %s deleted", args[0]), map[string]string{"id": args[0], "action": "delete"})
		}),
	}
	remove.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	contentCmd.AddCommand(list, approve, remove)
	return contentCmd
}
