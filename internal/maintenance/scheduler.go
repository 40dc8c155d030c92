package maintenance

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// NightlySpec runs at 03:00 every day. The first field is seconds.
const NightlySpec = "0 0 3 * * *"

type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers job under spec. Each run gets its own context
// bounded by timeout.
func NewScheduler(spec string, timeout time.Duration, job func(ctx context.Context) error) (*Scheduler, error) {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		log.Println("Maintenance job started...")
		if err := job(ctx); err != nil {
			log.Printf("Maintenance job failed: %v", err)
			return
		}
		log.Printf("Maintenance job completed in %s", time.Since(start).Round(time.Millisecond))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cron job: %w", err)
	}

	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for a running job, up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		log.Println("Maintenance job still running at shutdown")
	}
}
