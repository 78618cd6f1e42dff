package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"luggage/internal/core/application/usecases/commands"
	"luggage/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultRetentionSchedule runs the purge at 03:00 shop time.
const DefaultRetentionSchedule = "CRON_TZ=Asia/Tokyo 0 3 * * *"

// orderPurger is satisfied by *commands.PurgeExpiredOrdersCommandHandler.
type orderPurger interface {
	Handle(ctx context.Context, cmd commands.PurgeExpiredOrdersCommand) (int64, error)
}

// RetentionObserver is told the outcome of every run.
type RetentionObserver interface {
	RetentionSucceeded(purged int64)
	RetentionFailed()
}

type nopRetentionObserver struct{}

func (nopRetentionObserver) RetentionSucceeded(int64) {}
func (nopRetentionObserver) RetentionFailed() {}

// RetentionJob deletes orders older than the retention period once a day.
// Failures are logged and counted, never propagated; the next run retries.
type RetentionJob struct {
	purger    orderPurger
	clock     ports.Clock
	retention time.Duration
	schedule  string
	observer  RetentionObserver
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewRetentionJob validates schedule up front. A nil observer is allowed.
func NewRetentionJob(
	purger orderPurger,
	clock ports.Clock,
	retention time.Duration,
	schedule string,
	observer RetentionObserver,
	logger *slog.Logger,
) (*RetentionJob, error) {
	if schedule == "" {
		schedule = DefaultRetentionSchedule
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid retention schedule %q: %w", schedule, err)
	}
	if retention <= 0 {
		return nil, fmt.Errorf("retention must be positive, got %s", retention)
	}
	if observer == nil {
		observer = nopRetentionObserver{}
	}

	logger = logger.With("component", "retention_job")
	return &RetentionJob{
		purger:    purger,
		clock:     clock,
		retention: retention,
		schedule:  schedule,
		observer:  observer,
		cron:      cron.New(cron.WithChain(
			cron.Recover(cron.DiscardLogger),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		logger: logger,
	}, nil
}

func (j *RetentionJob) Name() string { return "retention" }

// Start schedules the job.
func (j *RetentionJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Retention job started",
		"schedule", j.schedule, "retention", j.retention.String())
	return nil
}

// Stop waits for a running purge to finish.
func (j *RetentionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Retention job stopped")
}

// RunOnce performs a single purge and reports how many orders went.
func (j *RetentionJob) RunOnce(ctx context.Context) int64 {
	cmd, err := commands.NewPurgeExpiredOrdersCommand(j.clock.Now(), j.retention)
	if err != nil {
		j.observer.RetentionFailed()
		j.logger.ErrorContext(ctx, "Retention job failed", "error", err)
		return 0
	}

	purged, err := j.purger.Handle(ctx, cmd)
	if err != nil {
		j.observer.RetentionFailed()
		j.logger.ErrorContext(ctx, "Retention job failed", "cutoff", cmd.Cutoff(), "error", err)
		return 0
	}

	j.observer.RetentionSucceeded(purged)
	j.logger.InfoContext(ctx, "Expired orders purged", "cutoff", cmd.Cutoff(), "purged", purged)
	return purged
}
