package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/networth-service/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = 10 * time.Minute

// Jobs are the periodic tasks the scheduler runs
type Jobs interface {
	SnapshotBalances(ctx context.Context) (int, error)
	SendDigests(ctx context.Context) (int, error)
}

// Scheduler runs balance snapshots and net worth digests on cron schedules
type Scheduler struct {
	cron *cron.Cron
	jobs Jobs
	log  *logrus.Logger
}

// NewScheduler registers the jobs with the configured schedules
func NewScheduler(cfg *config.Config, jobs Jobs, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		jobs: jobs,
		log:  log,
	}
	if _, err := s.cron.AddFunc(cfg.SnapshotSchedule, func() { s.run("snapshot", jobs.SnapshotBalances) }); err != nil {
		return nil, fmt.Errorf("failed to schedule snapshots: %w", err)
	}
	if _, err := s.cron.AddFunc(cfg.DigestSchedule, func() { s.run("digest", jobs.SendDigests) }); err != nil {
		return nil, fmt.Errorf("failed to schedule digests: %w", err)
	}
	return s, nil
}

func (s *Scheduler) run(name string, job func(ctx context.Context) (int, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := job(ctx)
	entry := s.log.WithFields(logrus.Fields{"job": name, "processed": n, "duration": time.Since(start).String()})
	if err != nil {
		entry.Errorf("Job failed: %v", err)
		return
	}
	entry.Info("Job finished")
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and returns a context that is done when running jobs finish
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
