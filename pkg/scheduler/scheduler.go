// Package scheduler runs the bucket monitor on a fixed interval.
package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mfco/spacewatch/pkg/monitor"
)

// Scheduler manages the background poll job for the bucket monitor.
// The interval is measured from the start of the previous cycle; a cycle
// that overruns its interval causes the next tick to be skipped rather than
// run concurrently, so exactly one cycle is ever in flight.
type Scheduler struct {
	cron     *cron.Cron
	monitor  *monitor.Service
	interval time.Duration
	log      *slog.Logger
	job      cron.Job
	initial  sync.WaitGroup
}

// NewScheduler creates a new scheduler instance polling every
// intervalSeconds seconds.
func NewScheduler(monitorSvc *monitor.Service, intervalSeconds int) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		monitor:  monitorSvc,
		interval: time.Duration(intervalSeconds) * time.Second,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the scheduler
func (s *Scheduler) SetLogger(log *slog.Logger) {
	s.log = log
}

// Start runs one immediate poll cycle in the background and then schedules
// the recurring job. The immediate cycle and the scheduled ticks share the
// same skip-if-still-running guard.
func (s *Scheduler) Start(ctx context.Context) {
	run := cron.FuncJob(func() {
		if err := s.monitor.RunCycle(ctx); err != nil {
			s.log.Error("poll cycle failed", slog.String("error", err.Error()))
		}
	})
	s.job = cron.NewChain(cron.SkipIfStillRunning(&cronLogger{log: s.log})).Then(run)

	s.cron.Schedule(cron.Every(s.interval), s.job)

	s.log.Info("starting bucket monitor", slog.Duration("interval", s.interval))
	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.job.Run()
	}()
	s.cron.Start()
}

// Stop stops the scheduler. A cycle already in flight runs to completion.
func (s *Scheduler) Stop() {
	s.log.Info("stopping bucket monitor")
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.initial.Wait()
}

// cronLogger adapts slog to the cron.Logger interface so skipped ticks are
// visible in the application log.
type cronLogger struct {
	log *slog.Logger
}

func (c *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Info(msg, slog.Any("details", keysAndValues))
}

func (c *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Error(msg, slog.String("error", err.Error()), slog.Any("details", keysAndValues))
}
