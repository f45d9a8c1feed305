package ports

import (
	"context"

	"crowddelivery/internal/core/domain/model/report"
)

// ReportRepository defines the persistence contract for incident reports.
type ReportRepository interface {
	// Add persists a new report and returns it with its store-assigned ID.
	Add(ctx context.Context, aggregate *report.Report) (*report.Report, error)

	// Get retrieves a report by ID. Returns ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id int64) (*report.Report, error)

	// Update persists a reviewed report.
	Update(ctx context.Context, aggregate *report.Report) error
}
