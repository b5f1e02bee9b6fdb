package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vantagedating/adminctl/internal/authz"
	"github.com/vantagedating/adminctl/internal/backend"
)

func newReportsCommand(r *root) *cobra.Command {
	reportsCmd := &cobra.Command{
		Use:   "reports",
		Short: "Review and resolve abuse reports",
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List abuse reports",
		Args:  cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			s, err := backend.ParseReportStatus(status)
			if err != nil {
				return err
			}
			if _, err := app.Require(cmd.Context(), authz.PermManageReports); err != nil {
				return err
			}
			reports, err := app.Client.ListReports(cmd.Context(), s)
			if err != nil {
				return err
			}
			return app.Render(reportsView(reports))
		}),
	}
	list.Flags().StringVar(&status, "status", "pending", "status: pending, resolved or all")

	var action string
	resolve := &cobra.Command{
		Use:   "resolve <report-id>",
		Short: "Resolve a report",
		Long: `Resolve a report with one of the moderation actions:

  approve  uphold the report
  reject   dismiss the report
  warn     warn the reported user
  ban      ban the reported user`,
		Example: `  adminctl reports resolve report-1 --action warn`,
		Args:    cobra.ExactArgs(1),
		RunE: r.run(func(cmd *cobra.Command, app *App, args []string) error {
			a, err := backend.ParseReportAction(action)
			if err != nil {
				return err
			}
			if _, err := app.Require(cmd.Context(), authz.PermManageReports); err != nil {
				return err
			}
			if err := app.Client.ResolveReport(cmd.Context(), args[0], a); err != nil {
				return err
			}
			app.Logger.Info("report resolved", "id", args[0], "action", a)
			return app.Notice(fmt.Sprintf("Report %s resolved: %s", args[0], a),
				map[string]string{"id": args[0], "action": string(a)})
		}),
	}
	resolve.Flags().StringVar(&action, "action", "", "action: approve, reject, warn or ban")
	_ = resolve.MarkFlagRequired("action")

	reportsCmd.AddCommand(list, resolve)
	return reportsCmd
}
