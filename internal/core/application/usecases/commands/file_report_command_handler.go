package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"crowddelivery/internal/core/domain/model/report"
	"crowddelivery/internal/core/ports"
	"crowddelivery/internal/pkg/errs"
)

// FileReportCommandHandler stores an incident report and notifies the merchant.
type FileReportCommandHandler struct {
	uowFactory ReportUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
	clock      func() time.Time
}

func NewFileReportCommandHandler(
	uowFactory ReportUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	clock func() time.Time,
) FileReportCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return FileReportCommandHandler{uowFactory: uowFactory, publisher: publisher, logger: logger, clock: clock}
}

// Handle checks inside one transaction that the rider currently holds the order
// and inserts a pending report. report:new goes to the merchant after commit.
//
// Returns:
//   - ObjectNotFoundError when the order does not exist
//   - TransitionRejectedError when the order is not assigned to the rider
func (h FileReportCommandHandler) Handle(ctx context.Context, cmd FileReportCommand) (report.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return report.Snapshot{}, err
	}

	draft, err := report.NewReport(cmd.Draft(), h.clock())
	if err != nil {
		return report.Snapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return report.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return report.Snapshot{}, err
	}
	if rider := o.RiderID(); rider == nil || *rider != cmd.RiderID() {
		return report.Snapshot{}, errs.NewTransitionRejectedError(
			"report", cmd.OrderID(), fmt.Sprintf("order is not assigned to rider %d", cmd.RiderID()),
		)
	}

	stored, err := uow.ReportRepository().Add(ctx, draft)
	if err != nil {
		return report.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return report.Snapshot{}, err
	}

	s := stored.Snapshot()
	if err := h.publisher.Publish(ctx, ports.UserChannel(o.MerchantID()), ports.EventReportNew, s); err != nil {
		h.logger.WarnContext(ctx, "publish failed", "event", ports.EventReportNew, "report_id", s.ID, "error", err)
	}
	return s, nil
}
