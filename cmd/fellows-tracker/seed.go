package main

import (
	"fmt"

	"github.com/deppfellow/fellows-tracker/internal/database"
	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all fellows and posts with the demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.loggerService.Shutdown()

			ctx := cmd.Context()
			if migrate {
				if err := database.Migrate(ctx, &a.log, a.cfg); err != nil {
					return err
				}
			}

			db, err := database.New(a.cfg, &a.log, a.loggerService)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			if err := database.Seed(ctx, db.Pool); err != nil {
				return fmt.Errorf("failed to seed database: %w", err)
			}

			a.log.Info().Int("fellows", len(database.SeedFellows)).Msg("database seeded")
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before seeding")

	return cmd
}
