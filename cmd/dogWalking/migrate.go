package main

import (
	"fmt"

	"dog_walking/internal/config"
	"dog_walking/internal/repository/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and seed the admin user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var seed config.SeedConfig
			rt, err := bootstrap(&seed)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := postgres.Migrate(rt.db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			rt.logger.Info("schema is up to date")
			return seedAdmin(cmd.Context(), rt, seed)
		},
	}
}
