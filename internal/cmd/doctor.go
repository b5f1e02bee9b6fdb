package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vantagedating/adminctl/internal/config"
	"github.com/vantagedating/adminctl/internal/health"
	"github.com/vantagedating/adminctl/internal/ux"
)

func newDoctorCommand(r *root) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the configuration, token store, backend and session",
		Long: `Run the console self-checks in parallel.

A missing session is reported as degraded. The command fails only when a
check is unhealthy.`,
		Args: cobra.NoArgs,
		RunE: r.run(func(cmd *cobra.Command, app *App, _ []string) error {
			m := health.NewManager(timeout)
			m.Add(health.NewCheckFunc("config", func(context.Context) *health.Result {
				return health.Healthy("configuration loaded").
					WithDetail("path", config.ResolvePath(app.cc.ConfigPath)).
					WithDetail("api_url", app.Config.APIURL)
			}))
			m.Add(health.NewStoreChecker(app.Config.TokenStore.Backend, app.Store))
			m.Add(health.NewBackendChecker(app.Client))
			m.Add(health.NewSessionChecker(app.Session))

			report := m.Run(cmd.Context())
			app.Logger.Debug("doctor finished", "status", report.Status)
			if err := app.Render(doctorView(report)); err != nil {
				return err
			}
			if report.Status == health.StatusUnhealthy {
				return fmt.Errorf("one or more checks are unhealthy")
			}
			return nil
		}),
	}

	cmd.Flags().DurationVar(&timeout, "timeout", health.DefaultTimeout, "deadline for each check")
	return cmd
}

type doctorView health.Report

func (v doctorView) Table() ux.Table {
	t := ux.Table{Headers: []string{"CHECK", "STATUS", "MESSAGE", "LATENCY"}}
	for _, c := range v.Checks {
		t.Rows = append(t.Rows, []string{c.Name, c.Status.String(), c.Message, c.Latency.Round(time.Millisecond).String()})
	}
	return t
}

func (v doctorView) Data() interface{} { return health.Report(v) }
