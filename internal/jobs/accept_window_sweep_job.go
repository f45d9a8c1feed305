package jobs

import (
	"context"
	"log/slog"
	"time"

	"crowddelivery/internal/core/application/usecases/commands"
	"crowddelivery/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const (
	sweepJobName     = "accept_window_sweep"
	DefaultSweepSpec = "@every 1s"
	sweepTimeout     = 30 * time.Second
)

// AcceptWindowSweepJob periodically expires every accepted order whose accept
// window has closed. It is the safety net behind the deadline timers and the
// only expiry path for orders accepted by another process.
type AcceptWindowSweepJob struct {
	handler commands.ExpireAcceptWindowsCommandHandler
	spec    string
	cron    *cron.Cron
	metrics *metrics.Jobs
	logger  *slog.Logger
}

// NewAcceptWindowSweepJob creates the sweep. An empty spec means DefaultSweepSpec;
// six-field cron expressions with seconds are accepted too. m may be nil.
func NewAcceptWindowSweepJob(
	handler commands.ExpireAcceptWindowsCommandHandler,
	spec string,
	m *metrics.Jobs,
	logger *slog.Logger,
) *AcceptWindowSweepJob {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	return &AcceptWindowSweepJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		metrics: m,
		logger:  logger.With("component", "accept_window_sweep_job"),
	}
}

// Name identifies the job in metrics and logs.
func (j *AcceptWindowSweepJob) Name() string { return sweepJobName }

// Start schedules the sweep. Overlapping runs are skipped.
func (j *AcceptWindowSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		_, _ = j.Run(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Accept window sweep started", "spec", j.spec)
	return nil
}

// Run performs one sweep and returns the number of expired orders.
func (j *AcceptWindowSweepJob) Run(ctx context.Context) (int, error) {
	start := time.Now()
	expired, err := j.handler.Handle(ctx, commands.NewExpireAcceptWindowsCommand())
	j.metrics.ObserveDuration(sweepJobName, time.Since(start))

	if err != nil {
		j.metrics.IncFailure(sweepJobName)
		j.logger.ErrorContext(ctx, "Accept window sweep failed", "expired", expired, "error", err)
		return expired, err
	}

	j.metrics.IncSuccess(sweepJobName)
	if expired > 0 {
		j.logger.InfoContext(ctx, "Accept window sweep expired orders", "expired", expired)
	}
	return expired, nil
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *AcceptWindowSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Accept window sweep stopped")
}
