package commands

import (
	"context"
	"log/slog"
	"time"

	"crowddelivery/internal/core/domain/model/report"
	"crowddelivery/internal/core/ports"
)

// ReviewReportCommandHandler records the decision on a report and tells the rider.
type ReviewReportCommandHandler struct {
	uowFactory ReportUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
	clock      func() time.Time
}

func NewReviewReportCommandHandler(
	uowFactory ReportUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	clock func() time.Time,
) ReviewReportCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return ReviewReportCommandHandler{uowFactory: uowFactory, publisher: publisher, logger: logger, clock: clock}
}

// Handle moves the report from pending to the decision. A report that was
// already reviewed yields TransitionRejectedError, also when a concurrent review
// won between the read and the write.
func (h ReviewReportCommandHandler) Handle(ctx context.Context, cmd ReviewReportCommand) (report.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return report.Snapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return report.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.ReportRepository().Get(ctx, cmd.ReportID())
	if err != nil {
		return report.Snapshot{}, err
	}
	if err = r.Review(cmd.Decision(), h.clock()); err != nil {
		return report.Snapshot{}, err
	}
	if err = uow.ReportRepository().Update(ctx, r); err != nil {
		return report.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return report.Snapshot{}, err
	}

	s := r.Snapshot()
	if err := h.publisher.Publish(ctx, ports.UserChannel(s.RiderID), ports.EventReportUpdated, s); err != nil {
		h.logger.WarnContext(ctx, "publish failed", "event", ports.EventReportUpdated, "report_id", s.ID, "error", err)
	}
	return s, nil
}
