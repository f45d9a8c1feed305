package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"crowddelivery/internal/core/application/usecases/commands"
	"crowddelivery/internal/core/ports"
)

// JobManager coordinates the background work of the dispatch core: the startup
// recovery, the deadline timers and the periodic sweep.
type JobManager struct {
	orders    ports.OrderRepository
	scheduler *DeadlineScheduler
	sweep     *AcceptWindowSweepJob
	logger    *slog.Logger
}

// NewJobManager creates a job manager over the given scheduler and sweep.
func NewJobManager(
	orders ports.OrderRepository,
	scheduler *DeadlineScheduler,
	sweep *AcceptWindowSweepJob,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orders:    orders,
		scheduler: scheduler,
		sweep:     sweep,
		logger:    logger.With("component", "job_manager"),
	}
}

// StartAll recovers from a restart and starts the periodic jobs, in this order:
//  1. expire every order whose accept window closed while the process was down
//  2. arm timers for accepted orders whose window is still open
//  3. start the sweep
//
// A recovery sweep that cannot scan the store is returned. Orders that fail to
// expire individually are logged and left to the periodic sweep.
func (jm *JobManager) StartAll(ctx context.Context) error {
	expired, err := jm.sweep.Run(ctx)
	var partial *commands.ExpiryFailuresError
	switch {
	case errors.As(err, &partial):
		jm.logger.WarnContext(ctx, "Recovery sweep could not expire some orders",
			"expired", expired, "failed", partial.Failed(), "error", err)
	case err != nil:
		return fmt.Errorf("recovery sweep: %w", err)
	}

	accepted, err := jm.orders.ListAccepted(ctx)
	if err != nil {
		return fmt.Errorf("load accepted orders: %w", err)
	}
	for _, o := range accepted {
		if deadline := o.TransferDeadline(); deadline != nil {
			jm.scheduler.Schedule(o.ID(), *deadline)
		}
	}
	jm.logger.InfoContext(ctx, "Recovered dispatch state", "expired", expired, "timers", len(accepted))

	if err := jm.sweep.Start(); err != nil {
		jm.scheduler.Stop()
		return fmt.Errorf("failed to start accept window sweep: %w", err)
	}
	return nil
}

// StopAll stops the sweep and disarms every timer.
func (jm *JobManager) StopAll() {
	jm.sweep.Stop()
	jm.scheduler.Stop()
}
