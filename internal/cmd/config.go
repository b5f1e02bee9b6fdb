package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vantagedating/adminctl/internal/config"
	"github.com/vantagedating/adminctl/internal/ux"
)

func newConfigCommand(r *root) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect adminctl configuration",
		Long: `Inspect the effective configuration.

Settings come from ~/.adminctl/config.yaml (or --config / ADMINCTL_CONFIG),
then ADMINCTL_* environment variables, then command-line flags.`,
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "view",
			Short: "Print the effective configuration with secrets masked",
			Args:  cobra.NoArgs,
			RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
				redacted := app.Config.Redacted()
				if app.cc.Format != ux.FormatText && app.cc.Format != "" {
					return app.Render(redacted)
				}
				data, err := yaml.Marshal(redacted)
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}),
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				explicit, err := cmd.Flags().GetString("config")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), config.ResolvePath(explicit))
				return nil
			},
		},
	)
	return configCmd
}
