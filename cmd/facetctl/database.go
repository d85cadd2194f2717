package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/facet-unt/departamentos-api/app"
	"github.com/facet-unt/departamentos-api/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update every table",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := app.Open()
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.Store.Init(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert roles, tipos de título, departamentos and the admin usuario",
	Long: `Seeds are idempotent: existing rows are kept.
The admin usuario is created from ADMIN_EMAIL and ADMIN_PASSWORD and skipped when they are unset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := app.Open()
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.Store.Init(); err != nil {
			return err
		}
		seeder := database.NewSeeder(rt.Store.DB(), rt.Log, database.AdminCredentials{
			Email:    rt.Env.ADMIN_EMAIL,
			Password: rt.Env.ADMIN_PASSWORD,
		})
		if err := seeder.SeedAll(); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "seeding completed")
		return nil
	},
}

var createdbCmd = &cobra.Command{
	Use:   "createdb",
	Short: "Create DB_NAME on the Postgres server if it is missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, log, err := app.LoadEnv()
		if err != nil {
			return err
		}
		defer log.Sync()

		created, err := database.EnsureDatabase(env, log)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "created database %s\n", env.DB_NAME)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to do")
		}
		return nil
	},
}
