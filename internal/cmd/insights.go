package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vantagedating/adminctl/internal/backend"
	"github.com/vantagedating/adminctl/internal/errors"
)

func newDashboardCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the user base summary and weekly engagement",
		Args:  cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			ctx := cmd.Context()
			if _, err := app.RequireSession(ctx); err != nil {
				return err
			}
			users, err := app.Client.UserStats(ctx)
			if err != nil {
				return err
			}
			stats, err := app.Client.Statistics(ctx, backend.StatsRange7d)
			if err != nil {
				return err
			}
			return app.Render(dashboardView{Users: users, Statistics: stats})
		}),
	}
}

func newStatsCommand(r *root) *cobra.Command {
	var window string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show engagement statistics",
		Args:  cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			rng, err := backend.ParseStatsRange(window)
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(cmd.Context()); err != nil {
				return err
			}
			stats, err := app.Client.Statistics(cmd.Context(), rng)
			if err != nil {
				return err
			}
			return app.Render(statsView{Range: rng, Statistics: stats})
		}),
	}
	cmd.Flags().StringVar(&window, "range", "7d", "window: 7d, 30d, 90d or all")
	return cmd
}

func newSettingsCommand(r *root) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Platform settings",
	}

	credits := &cobra.Command{
		Use:   "credits",
		Short: "Show the credit price list",
		Args:  cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			if _, err := app.RequireSession(cmd.Context()); err != nil {
				return err
			}
			settings, err := app.Client.CreditSettings(cmd.Context())
			if err != nil {
				return err
			}
			return app.Render(creditsView{settings})
		}),
	}
	credits.AddCommand(newCreditsSetCommand(r))

	settingsCmd.AddCommand(credits)
	return settingsCmd
}

// creditFlags maps flag names to the price they set.
func creditFlags(s *backend.CreditSettings) map[string]*int {
	return map[string]*int{
		"chat-message":  &s.ChatMessage,
		"voice-call":    &s.VoiceCallPerMinute,
		"video-call":    &s.VideoCallPerMinute,
		"photo-view":    &s.PhotoViewCredits,
		"video-view":    &s.VideoViewCredits,
		"voice-message": &s.VoiceMessageCredits,
	}
}

func newCreditsSetCommand(r *root) *cobra.Command {
	var values backend.CreditSettings

	cmd := &cobra.Command{
		Use:     "set",
		Short:   "Change credit prices (super admin only)",
		Long:    `Change one or more credit prices. Prices that are not given keep their current value.`,
		Example: `  adminctl settings credits set --chat-message 2 --video-call 25`,
		Args:    cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			ctx := cmd.Context()
			session, err := app.RequireSession(ctx)
			if err != nil {
				return err
			}
			if !session.IsSuperAdmin() {
				return errors.NewPermissionDeniedError("settings:credits", session.Identity().UserType)
			}

			given := creditFlags(&values)
			changed := false
			for name := range given {
				if cmd.Flags().Changed(name) {
					changed = true
				}
			}
			if !changed {
				return errors.NewInputRequiredError("at least one price flag")
			}

			current, err := app.Client.CreditSettings(ctx)
			if err != nil {
				return err
			}
			next := *current
			for name, dst := range creditFlags(&next) {
				if cmd.Flags().Changed(name) {
					*dst = *given[name]
				}
			}
			if err := app.Client.UpdateCreditSettings(ctx, next); err != nil {
				return err
			}
			app.Logger.Info("credit settings updated")
			if app.cc.Format == "" || app.cc.Format == "text" {
				fmt.Fprintln(cmd.OutOrStdout(), "Credit prices updated")
			}
			return app.Render(creditsView{&next})
		}),
	}

	flags := cmd.Flags()
	flags.IntVar(&values.ChatMessage, "chat-message", 0, "credits per chat message")
	flags.IntVar(&values.VoiceCallPerMinute, "voice-call", 0, "credits per voice call minute")
	flags.IntVar(&values.VideoCallPerMinute, "video-call", 0, "credits per video call minute")
	flags.IntVar(&values.PhotoViewCredits, "photo-view", 0, "credits per private photo view")
	flags.IntVar(&values.VideoViewCredits, "video-view", 0, "credits per private video view")
	flags.IntVar(&values.VoiceMessageCredits, "voice-message", 0, "credits per voice message")
	return cmd
}
