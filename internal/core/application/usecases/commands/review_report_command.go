package commands

import (
	"errors"

	"crowddelivery/internal/core/domain/model/report"
	"crowddelivery/internal/pkg/errs"
	"crowddelivery/internal/pkg/guard"
)

var ErrReviewReportCommandIsNotConstructed = errors.New(
	"ReviewReportCommand must be created via NewReviewReportCommand constructor",
)

// ReviewReportCommand approves or rejects a pending report.
type ReviewReportCommand struct {
	reportID int64
	decision report.Status

	guard guard.ConstructorGuard
}

func NewReviewReportCommand(reportID int64, decision report.Status) (ReviewReportCommand, error) {
	if err := validateID("reportId", reportID); err != nil {
		return ReviewReportCommand{}, err
	}
	if !decision.IsDecision() {
		return ReviewReportCommand{}, errs.NewValueIsInvalidError("decision")
	}

	return ReviewReportCommand{reportID: reportID, decision: decision, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewReportCommand) Validate() error {
	return c.guard.Validate(ErrReviewReportCommandIsNotConstructed)
}

func (c ReviewReportCommand) ReportID() int64         { return c.reportID }
func (c ReviewReportCommand) Decision() report.Status { return c.decision }
