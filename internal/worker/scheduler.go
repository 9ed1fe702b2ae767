package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"hacktrack/internal/metrics"
	"hacktrack/internal/services"
)

// Job is one scheduled run; it has the same shape as the cron endpoints.
type Job func(ctx context.Context, now time.Time) (*services.RunSummary, error)

// Scheduler runs jobs in-process on cron expressions, alongside the
// externally triggered endpoints.
type Scheduler struct {
	cron    *cron.Cron
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

func NewScheduler(loc *time.Location, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger,
		timeout: 5 * time.Minute,
		now:     time.Now,
	}
}

// Add registers job under name. expr uses the standard five-field syntax or
// descriptors such as "@hourly".
func (s *Scheduler) Add(expr, name string, job Job) error {
	if _, err := s.cron.AddFunc(expr, func() { s.runJob(name, job) }); err != nil {
		return fmt.Errorf("schedule %s %q: %w", name, expr, err)
	}
	s.logger.Info("[worker][schedule] registered", zap.String("job", name), zap.String("expr", expr))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("[worker] scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop prevents new runs and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("[worker] stop timed out with a job still running")
	}
	s.logger.Info("[worker] scheduler stopped")
}

func (s *Scheduler) runJob(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := s.now()
	summary, err := job(ctx, start)
	metrics.JobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.JobRuns.WithLabelValues(name, "error").Inc()
		s.logger.Error("[worker]["+name+"][err]", zap.Error(err))
		return
	}
	metrics.JobRuns.WithLabelValues(name, "ok").Inc()
	s.logger.Info("[worker]["+name+"] done",
		zap.Int("emails_sent", summary.EmailsSent),
		zap.Int("errors", len(summary.Errors)),
	)
}
