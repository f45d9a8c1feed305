package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"crowddelivery/internal/core/domain/model/kernel"
	"crowddelivery/internal/pkg/errs"
)

var ErrReportIsNotConstructed = errors.New("Report must be created via NewReport or RestoreReport constructor")

// Status is the review state of a report.
type Status string

const (
	Pending  Status = "pending"
	Approved Status = "approved"
	Rejected Status = "rejected"
)

// Validate checks that the status is pending, approved or rejected.
func (s Status) Validate() error {
	switch s {
	case Pending, Approved, Rejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid report status", string(s)))
	}
}

// IsDecision reports whether s is a valid outcome of a review.
func (s Status) IsDecision() bool {
	return s == Approved || s == Rejected
}

// Draft carries the rider-supplied attributes of a new report.
type Draft struct {
	OrderID  int64
	RiderID  int64
	Type     string
	Content  string
	PhotoURL string
	// Location is where the incident happened, when the device had a fix.
	Location *kernel.Location
}

// Snapshot is the persisted and published form of a report.
type Snapshot struct {
	ID         int64      `json:"id"`
	OrderID    int64      `json:"orderId"`
	RiderID    int64      `json:"riderId"`
	Type       string     `json:"type"`
	Content    string     `json:"content"`
	PhotoURL   string     `json:"photoUrl"`
	Lat        *float64   `json:"lat"`
	Lng        *float64   `json:"lng"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	ReviewedAt *time.Time `json:"reviewedAt"`
}

// Report is an incident report attached to an order and the rider holding it.
type Report struct {
	s             Snapshot
	isConstructed bool
}

// NewReport creates a pending report.
func NewReport(d Draft, now time.Time) (*Report, error) {
	r := &Report{
		s: Snapshot{
			OrderID:   d.OrderID,
			RiderID:   d.RiderID,
			Type:      strings.TrimSpace(d.Type),
			Content:   strings.TrimSpace(d.Content),
			PhotoURL:  strings.TrimSpace(d.PhotoURL),
			Status:    Pending,
			CreatedAt: now.UTC(),
		},
		isConstructed: true,
	}
	if d.Location != nil {
		if err := d.Location.Validate(); err != nil {
			return nil, err
		}
		lat, lng := d.Location.Lat(), d.Location.Lng()
		r.s.Lat, r.s.Lng = &lat, &lng
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// RestoreReport rebuilds a stored report.
func RestoreReport(s Snapshot) (*Report, error) {
	if s.ID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a positive identifier", s.ID))
	}
	if (s.Lat == nil) != (s.Lng == nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("location", errors.New("lat and lng must be set together"))
	}
	if s.Lat != nil {
		if _, err := kernel.NewLocation(*s.Lat, *s.Lng); err != nil {
			return nil, err
		}
	}
	s.CreatedAt = s.CreatedAt.UTC()
	if s.ReviewedAt != nil {
		v := s.ReviewedAt.UTC()
		s.ReviewedAt = &v
	}

	r := &Report{s: s, isConstructed: true}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate ensures the Report instance was properly constructed.
func (r *Report) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReportIsNotConstructed
	}
	return nil
}

func (r *Report) ID() int64 { return r.s.ID }
func (r *Report) OrderID() int64 { return r.s.OrderID }
func (r *Report) RiderID() int64 { return r.s.RiderID }
func (r *Report) Status() Status { return r.s.Status }
func (r *Report) Snapshot() Snapshot { return r.s }

// Review records the decision on a pending report.
//
// Returns:
//   - nil when the report moved from pending to decision
//   - ValueIsInvalidError when decision is not approved or rejected
//   - TransitionRejectedError when the report was already reviewed
func (r *Report) Review(decision Status, now time.Time) error {
	if !decision.IsDecision() {
		return errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%q is not approved or rejected", string(decision)))
	}
	if r.s.Status != Pending {
		return errs.NewTransitionRejectedError("review", r.s.ID, fmt.Sprintf("report is already %s", r.s.Status))
	}

	reviewedAt := now.UTC()
	r.s.Status = decision
	r.s.ReviewedAt = &reviewedAt
	return nil
}

func (r *Report) validate() error {
	s := r.s
	var problems []error

	if s.OrderID <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not a positive identifier", s.OrderID)))
	}
	if s.RiderID <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("riderId", fmt.Errorf("%d is not a positive identifier", s.RiderID)))
	}
	if s.Type == "" {
		problems = append(problems, errs.NewValueIsRequiredError("type"))
	}
	if s.Content == "" && s.PhotoURL == "" {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("content", errors.New("a report needs a description or a photo")))
	}
	if err := s.Status.Validate(); err != nil {
		problems = append(problems, err)
	}
	if (s.Status == Pending) != (s.ReviewedAt == nil) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("reviewedAt", fmt.Errorf("inconsistent with status %s", s.Status)))
	}

	return errors.Join(problems...)
}
