package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/facet-unt/departamentos-api/app"
	"github.com/facet-unt/departamentos-api/services"
	"github.com/facet-unt/departamentos-api/services/cron"
)

var runJobCmd = &cobra.Command{
	Use:   "run-job <name>",
	Short: "Run a scheduled job once and record it in cron_job_logs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := app.Open()
		if err != nil {
			return err
		}
		defer rt.Close()

		db := rt.Store.DB()
		manager := cron.NewCronManager(db, rt.Log, services.NewNotificationService(db, rt.Log), cron.Config{
			NoticeWindow: time.Duration(rt.Env.DESIGNATION_NOTICE_DAYS) * 24 * time.Hour,
		})
		if err := manager.Run(args[0]); err != nil {
			return fmt.Errorf("%w (jobs: %s)", err, strings.Join(manager.JobNames(), ", "))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s finished\n", args[0])
		return nil
	},
}
