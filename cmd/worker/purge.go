package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gigflow/gigflow-backend/internal/maintenance"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Hard-delete soft-deleted projects and sample works",
	Long: `Permanently remove projects and sample works that were soft-deleted
longer ago than the retention window. Defaults to PURGE_RETENTION.`,
	RunE: runPurge,
}

var purgeOlderThan time.Duration

func init() {
	purgeCmd.Flags().DurationVar(&purgeOlderThan, "older-than", 0, "Retention window (e.g. 720h); defaults to PURGE_RETENTION")
}

func runPurge(cmd *cobra.Command, args []string) error {
	retention := purgeOlderThan
	if retention == 0 {
		retention = app.cfg.App.PurgeRetention
	}

	res, err := maintenance.NewPurger(app.pool).Purge(cmd.Context(), retention)
	if err != nil {
		return err
	}
	fmt.Printf("Purged %d project(s) and %d sample work(s) deleted before %s\n",
		res.Projects, res.SampleWorks, res.Cutoff.Format(time.RFC3339))
	return nil
}
