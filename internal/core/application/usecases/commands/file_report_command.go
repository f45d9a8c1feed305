package commands

import (
	"errors"

	"crowddelivery/internal/core/domain/model/kernel"
	"crowddelivery/internal/core/domain/model/report"
	"crowddelivery/internal/pkg/errs"
	"crowddelivery/internal/pkg/guard"
)

var ErrFileReportCommandIsNotConstructed = errors.New(
	"FileReportCommand must be created via NewFileReportCommand constructor",
)

// FileReportParams are the rider-supplied fields of an incident report.
// Lat and Lng are optional but must be given together.
type FileReportParams struct {
	OrderID  int64
	RiderID  int64
	Type     string
	Content  string
	PhotoURL string
	Lat      *float64
	Lng      *float64
}

// FileReportCommand opens an incident report on an order held by the rider.
type FileReportCommand struct {
	draft report.Draft

	guard guard.ConstructorGuard
}

func NewFileReportCommand(p FileReportParams) (FileReportCommand, error) {
	if err := errors.Join(
		validateID("orderId", p.OrderID),
		validateID("riderId", p.RiderID),
	); err != nil {
		return FileReportCommand{}, err
	}

	d := report.Draft{
		OrderID:  p.OrderID,
		RiderID:  p.RiderID,
		Type:     p.Type,
		Content:  p.Content,
		PhotoURL: p.PhotoURL,
	}

	switch {
	case p.Lat == nil && p.Lng == nil:
	case p.Lat == nil || p.Lng == nil:
		return FileReportCommand{}, errs.NewValueIsInvalidErrorWithCause("location", errors.New("lat and lng must be set together"))
	default:
		location, err := kernel.NewLocation(*p.Lat, *p.Lng)
		if err != nil {
			return FileReportCommand{}, err
		}
		d.Location = &location
	}

	return FileReportCommand{draft: d, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c FileReportCommand) Validate() error {
	return c.guard.Validate(ErrFileReportCommandIsNotConstructed)
}

func (c FileReportCommand) OrderID() int64      { return c.draft.OrderID }
func (c FileReportCommand) RiderID() int64      { return c.draft.RiderID }
func (c FileReportCommand) Draft() report.Draft { return c.draft }
