package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"crowddelivery/internal/core/domain/model/kernel"
	"crowddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxNumberLength = 64

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Draft carries the merchant-supplied attributes of an order that does not exist yet.
type Draft struct {
	// Number is the human readable order number. Generated when empty.
	Number string

	MerchantID         int64
	CustomerName       string
	CustomerPhone      string
	DestinationAddress string
	Destination        kernel.Location

	// Weight in kilograms, must be positive.
	Weight float64
	// Distance in kilometers, must not be negative.
	Distance float64
	// Price is computed by the pricing service, never supplied by the client.
	Price decimal.Decimal

	Type          Type
	ScheduledTime *time.Time
	Remarks       string
}

// Snapshot is the flat, persisted form of an order. It is what the store reads and
// writes, what queries return and what real-time events carry.
type Snapshot struct {
	ID                 int64           `json:"id"`
	OrderNumber        string          `json:"orderNumber"`
	MerchantID         int64           `json:"merchantId"`
	RiderID            *int64          `json:"riderId"`
	CustomerName       string          `json:"customerName"`
	CustomerPhone      string          `json:"customerPhone"`
	DestinationAddress string          `json:"destinationAddress"`
	DestinationLat     float64         `json:"destinationLat"`
	DestinationLng     float64         `json:"destinationLng"`
	Weight             float64         `json:"weight"`
	Distance           float64         `json:"distance"`
	Price              decimal.Decimal `json:"price" swaggertype:"string"`
	Status             Status          `json:"status"`
	Type               Type            `json:"type"`
	ScheduledTime      *time.Time      `json:"scheduledTime"`
	Remarks            string          `json:"remarks"`
	CreatedAt          time.Time       `json:"createdAt"`
	AcceptedAt         *time.Time      `json:"acceptedAt"`
	PickedUpAt         *time.Time      `json:"pickedUpAt"`
	DeliveredAt        *time.Time      `json:"deliveredAt"`
	TransferDeadline   *time.Time      `json:"transferDeadline"`
}

// Order is the aggregate root of the dispatch domain. It tracks one delivery from
// creation by a merchant through acceptance by a rider to delivery or cancellation.
//
// Order follows these invariants:
//   - A rider is referenced if and only if the status is accepted, picked_up or delivered
//   - A transfer deadline is set if and only if the status is accepted
//   - Status only changes along the edges of the Status state machine
//   - Can only be created through NewOrder or RestoreOrder
//
// The fields are private; concurrent mutation of a stored order happens in the
// order repository through Transition values, never through a shared instance.
type Order struct {
	s Snapshot

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates a pending order from a draft.
//
// Parameters:
//   - d: merchant-supplied attributes; Number is generated when empty
//   - now: creation time, stored in UTC
//
// Returns:
//   - *Order: the pending order (ID is zero until the repository stores it)
//   - error: joined validation errors for every invalid attribute
//
// Example:
//
//	dest, _ := kernel.NewLocation(31.23, 121.47)
//	o, err := order.NewOrder(order.Draft{
//	    MerchantID: 1, CustomerName: "Li", CustomerPhone: "138...",
//	    DestinationAddress: "No. 5 Road", Destination: dest,
//	    Weight: 2, Distance: 3, Price: price, Type: order.Instant,
//	}, time.Now())
func NewOrder(d Draft, now time.Time) (*Order, error) {
	number := strings.TrimSpace(d.Number)
	if number == "" {
		number = NewNumber(now)
	}

	o := &Order{
		s: Snapshot{
			OrderNumber:        number,
			MerchantID:         d.MerchantID,
			CustomerName:       strings.TrimSpace(d.CustomerName),
			CustomerPhone:      strings.TrimSpace(d.CustomerPhone),
			DestinationAddress: strings.TrimSpace(d.DestinationAddress),
			DestinationLat:     d.Destination.Lat(),
			DestinationLng:     d.Destination.Lng(),
			Weight:             d.Weight,
			Distance:           d.Distance,
			Price:              d.Price,
			Status:             Pending,
			Type:               d.Type,
			ScheduledTime:      utcPtr(d.ScheduledTime),
			Remarks:            d.Remarks,
			CreatedAt:          now.UTC(),
		},
		isConstructed: true,
	}

	if err := errors.Join(
		d.Destination.Validate(),
		o.validateAttributes(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from its persisted snapshot and checks every invariant.
// Used by repositories; a snapshot that violates an invariant indicates corrupted storage.
func RestoreOrder(s Snapshot) (*Order, error) {
	if s.ID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a positive identifier", s.ID))
	}

	s.CreatedAt = s.CreatedAt.UTC()
	s.ScheduledTime = utcPtr(s.ScheduledTime)
	s.AcceptedAt = utcPtr(s.AcceptedAt)
	s.PickedUpAt = utcPtr(s.PickedUpAt)
	s.DeliveredAt = utcPtr(s.DeliveredAt)
	s.TransferDeadline = utcPtr(s.TransferDeadline)

	o := &Order{s: s, isConstructed: true}
	if _, err := kernel.NewLocation(s.DestinationLat, s.DestinationLng); err != nil {
		return nil, err
	}
	if err := errors.Join(o.validateAttributes(), o.validateInvariants()); err != nil {
		return nil, err
	}

	return o, nil
}

// NewNumber generates an order number of the form ORD<yyyymmdd>-<12 hex digits>.
func NewNumber(now time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("ORD%s-%s", now.UTC().Format("20060102"), strings.ToUpper(id[:12]))
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// ID returns the store-assigned identifier; zero before the order is persisted.
func (o *Order) ID() int64 { return o.s.ID }

// Number returns the human readable order number.
func (o *Order) Number() string { return o.s.OrderNumber }

// MerchantID returns the owning merchant.
func (o *Order) MerchantID() int64 { return o.s.MerchantID }

// RiderID returns the assigned rider, nil when no rider holds the order.
func (o *Order) RiderID() *int64 { return o.s.RiderID }

// Status returns the current status of the order.
func (o *Order) Status() Status { return o.s.Status }

// Price returns the computed delivery fee.
func (o *Order) Price() decimal.Decimal { return o.s.Price }

// TransferDeadline returns the end of the accept window, nil unless accepted.
func (o *Order) TransferDeadline() *time.Time { return o.s.TransferDeadline }

// CreatedAt returns the creation time in UTC.
func (o *Order) CreatedAt() time.Time { return o.s.CreatedAt }

// Snapshot returns a copy of the order's persisted form.
func (o *Order) Snapshot() Snapshot {
	s := o.s
	s.RiderID = clonePtr(o.s.RiderID)
	s.ScheduledTime = clonePtr(o.s.ScheduledTime)
	s.AcceptedAt = clonePtr(o.s.AcceptedAt)
	s.PickedUpAt = clonePtr(o.s.PickedUpAt)
	s.DeliveredAt = clonePtr(o.s.DeliveredAt)
	s.TransferDeadline = clonePtr(o.s.TransferDeadline)
	return s
}

// Apply performs t in memory.
//
// Returns:
//   - nil when the guard holds; the order now reflects the effect
//   - TransitionRejectedError when the guard does not hold; the order is unchanged
//   - a validation error if t targets another order or is not a known action
func (o *Order) Apply(t Transition) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if t.OrderID != o.s.ID {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("transition targets %d, order is %d", t.OrderID, o.s.ID))
	}
	if err := t.Action.Validate(); err != nil {
		return err
	}
	if reason := t.Guard.Check(o.s); reason != nil {
		return t.Reject(reason)
	}
	if _, err := o.s.Status.Apply(t.Action); err != nil {
		return t.Reject(err)
	}

	next := o.s
	e := t.Effect
	next.Status = e.Status
	if e.ClearRider {
		next.RiderID = nil
	} else if e.RiderID != nil {
		next.RiderID = clonePtr(e.RiderID)
	}
	if e.ClearDeadline {
		next.TransferDeadline = nil
	} else if e.TransferDeadline != nil {
		next.TransferDeadline = clonePtr(e.TransferDeadline)
	}
	if e.AcceptedAt != nil {
		next.AcceptedAt = clonePtr(e.AcceptedAt)
	}
	if e.PickedUpAt != nil {
		next.PickedUpAt = clonePtr(e.PickedUpAt)
	}
	if e.DeliveredAt != nil {
		next.DeliveredAt = clonePtr(e.DeliveredAt)
	}

	candidate := Order{s: next, isConstructed: true}
	if err := candidate.validateInvariants(); err != nil {
		return err
	}

	o.s = next
	return nil
}

func (o *Order) validateAttributes() error {
	s := o.s
	var problems []error

	if s.MerchantID <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("merchantId", fmt.Errorf("%d is not a positive identifier", s.MerchantID)))
	}
	if s.OrderNumber == "" {
		problems = append(problems, errs.NewValueIsRequiredError("orderNumber"))
	} else if len(s.OrderNumber) > maxNumberLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("orderNumber length", len(s.OrderNumber), 1, maxNumberLength))
	}
	if s.CustomerName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("customerName"))
	}
	if s.CustomerPhone == "" {
		problems = append(problems, errs.NewValueIsRequiredError("customerPhone"))
	}
	if s.DestinationAddress == "" {
		problems = append(problems, errs.NewValueIsRequiredError("destinationAddress"))
	}
	if s.Weight <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%g is not greater than 0", s.Weight)))
	}
	if s.Distance < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("%g is negative", s.Distance)))
	}
	if s.Price.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", s.Price)))
	}
	if err := s.Type.Validate(); err != nil {
		problems = append(problems, err)
	}
	if s.Type == Scheduled && s.ScheduledTime == nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("scheduledTime", errors.New("scheduled orders need a delivery time")))
	}
	if s.Type == Instant && s.ScheduledTime != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("scheduledTime", errors.New("instant orders have no delivery time")))
	}
	if s.CreatedAt.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("createdAt"))
	}

	return errors.Join(problems...)
}

func (o *Order) validateInvariants() error {
	if err := o.s.Status.Validate(); err != nil {
		return err
	}

	return errors.Join(
		o.s.Status.ValidateCanHaveRider(o.s.RiderID != nil),
		o.s.Status.ValidateCanHaveDeadline(o.s.TransferDeadline != nil),
	)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
