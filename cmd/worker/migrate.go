package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gigflow/gigflow-backend/internal/storage/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the most recent migrations",
	Long: `Revert applied migrations, newest first.

Examples:
  worker migrate down             # Revert the last migration
  worker migrate down --steps 3   # Revert the last three`,
	RunE: runMigrateDown,
}

var migrateDownSteps int

func init() {
	migrateCmd.AddCommand(migrateDownCmd)
	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "Number of migrations to revert")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	applied, err := postgres.NewMigrator(app.pool).Up(cmd.Context())
	for _, v := range applied {
		fmt.Printf("Applied migration %03d\n", v)
	}
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Println("Schema is up to date")
	}
	return nil
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	if migrateDownSteps < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}

	reverted, err := postgres.NewMigrator(app.pool).Down(cmd.Context(), migrateDownSteps)
	for _, v := range reverted {
		fmt.Printf("Reverted migration %03d\n", v)
	}
	if err != nil {
		return err
	}
	if len(reverted) == 0 {
		fmt.Println("Nothing to revert")
	}
	return nil
}
