// Package reportrepo persists incident reports filed by riders.
package reportrepo

import (
	"time"

	"crowddelivery/internal/core/domain/model/report"
)

// ReportDTO is the database row of a report.
type ReportDTO struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	OrderID    int64  `gorm:"not null;index"`
	RiderID    int64  `gorm:"not null;index"`
	Type       string `gorm:"size:64;not null"`
	Content    string `gorm:"type:text"`
	PhotoURL   string `gorm:"size:512"`
	Lat        *float64
	Lng        *float64
	Status     string    `gorm:"size:16;not null;index"`
	CreatedAt  time.Time `gorm:"not null"`
	ReviewedAt *time.Time
}

func (ReportDTO) TableName() string {
	return "reports"
}

func fromDomain(r *report.Report) ReportDTO {
	s := r.Snapshot()
	return ReportDTO{
		ID:         s.ID,
		OrderID:    s.OrderID,
		RiderID:    s.RiderID,
		Type:       s.Type,
		Content:    s.Content,
		PhotoURL:   s.PhotoURL,
		Lat:        s.Lat,
		Lng:        s.Lng,
		Status:     string(s.Status),
		CreatedAt:  s.CreatedAt,
		ReviewedAt: s.ReviewedAt,
	}
}

func toDomain(dto ReportDTO) (*report.Report, error) {
	return report.RestoreReport(report.Snapshot{
		ID:         dto.ID,
		OrderID:    dto.OrderID,
		RiderID:    dto.RiderID,
		Type:       dto.Type,
		Content:    dto.Content,
		PhotoURL:   dto.PhotoURL,
		Lat:        dto.Lat,
		Lng:        dto.Lng,
		Status:     report.Status(dto.Status),
		CreatedAt:  dto.CreatedAt,
		ReviewedAt: dto.ReviewedAt,
	})
}
