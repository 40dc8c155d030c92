package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/gigflow/gigflow-backend/config"
	"github.com/gigflow/gigflow-backend/internal/platform/logging"
	"github.com/gigflow/gigflow-backend/internal/storage/postgres"
)

// app holds what every subcommand needs. It is filled in by
// PersistentPreRunE and released by PersistentPostRun.
var app struct {
	cfg  *config.Config
	pool *pgxpool.Pool
}

var rootCmd = &cobra.Command{
	Use:   "worker",
	Short: "GigFlow maintenance tasks",
	Long: `worker runs database maintenance for the GigFlow API.

Examples:
  worker migrate                      # Apply pending schema migrations
  worker purge --older-than 720h      # Remove soft-deleted rows older than 30 days
  worker schedule                     # Run the purge nightly until interrupted`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logging.SetLevel(cfg.App.LogLevel)

		pool, err := postgres.NewPool(cmd.Context(), &cfg.Database)
		if err != nil {
			return err
		}
		app.cfg, app.pool = cfg, pool
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app.pool != nil {
			app.pool.Close()
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(scheduleCmd)
}
