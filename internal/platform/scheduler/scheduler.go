package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Job runs every Interval. A zero interval disables it.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context)
}

type Scheduler struct {
	cron gocron.Scheduler
}

// Start registers the enabled jobs and starts the scheduler. Runs of the same job never overlap;
// ctx is handed to every run.
func Start(ctx context.Context, loc *time.Location, jobs ...Job) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	cron, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	for _, job := range jobs {
		if job.Interval <= 0 || job.Run == nil {
			slog.Info("scheduled job disabled", slog.String("job", job.Name))
			continue
		}
		run := job.Run
		_, err := cron.NewJob(
			gocron.DurationJob(job.Interval),
			gocron.NewTask(func() { run(ctx) }),
			gocron.WithName(job.Name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = cron.Shutdown()
			return nil, fmt.Errorf("schedule %s: %w", job.Name, err)
		}
		slog.Info("scheduled job registered", slog.String("job", job.Name), slog.Duration("interval", job.Interval))
	}

	cron.Start()
	return &Scheduler{cron: cron}, nil
}

// JobNames lists the registered jobs.
func (s *Scheduler) JobNames() []string {
	jobs := s.cron.Jobs()
	names := make([]string, 0, len(jobs))
	for _, job := range jobs {
		names = append(names, job.Name())
	}
	return names
}

func (s *Scheduler) Shutdown() error {
	return s.cron.Shutdown()
}
