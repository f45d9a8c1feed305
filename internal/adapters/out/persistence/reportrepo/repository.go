package reportrepo

import (
	"context"
	"errors"
	"fmt"

	"crowddelivery/internal/adapters/out/persistence/gormerr"
	"crowddelivery/internal/core/domain/model/report"
	"crowddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

const resource = "reports"

// GormReportRepository implements ports.ReportRepository using GORM.
type GormReportRepository struct {
	db *gorm.DB
}

func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Add saves a new report and returns it with its assigned ID.
func (r *GormReportRepository) Add(ctx context.Context, aggregate *report.Report) (*report.Report, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, gormerr.Translate(resource, err)
	}

	return toDomain(dto)
}

// Get retrieves a report by ID.
func (r *GormReportRepository) Get(ctx context.Context, id int64) (*report.Report, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a positive identifier", id))
	}

	var dto ReportDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("report", id)
		}
		return nil, gormerr.Translate(resource, err)
	}

	return toDomain(dto)
}

// Update writes the review outcome. The row must still be pending, so two
// reviewers racing on one report cannot both succeed.
func (r *GormReportRepository) Update(ctx context.Context, aggregate *report.Report) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ReportDTO{}).
		Where("id = ? AND status = ?", dto.ID, string(report.Pending)).
		Updates(map[string]any{"status": dto.Status, "reviewed_at": dto.ReviewedAt})
	if result.Error != nil {
		return gormerr.Translate(resource, result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewTransitionRejectedError("review", dto.ID, "report is no longer pending")
	}
	return nil
}
