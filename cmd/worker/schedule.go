package main

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/gigflow/gigflow-backend/internal/maintenance"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the purge nightly until interrupted",
	RunE:  runSchedule,
}

var scheduleSpec string

func init() {
	scheduleCmd.Flags().StringVar(&scheduleSpec, "cron", maintenance.NightlySpec, "Cron spec with a leading seconds field")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	purger := maintenance.NewPurger(app.pool)
	retention := app.cfg.App.PurgeRetention

	s, err := maintenance.NewScheduler(scheduleSpec, 10*time.Minute, func(ctx context.Context) error {
		res, err := purger.Purge(ctx, retention)
		if err != nil {
			return err
		}
		log.Printf("Purged %d project(s) and %d sample work(s)", res.Projects, res.SampleWorks)
		return nil
	})
	if err != nil {
		return err
	}

	s.Start()
	log.Printf("Cron scheduler started (%s)", scheduleSpec)

	<-cmd.Context().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.Stop(ctx)
	log.Println("Cron scheduler stopped")
	return nil
}
