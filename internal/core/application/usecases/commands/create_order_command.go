package commands

import (
	"errors"
	"strings"
	"time"

	"crowddelivery/internal/core/domain/model/kernel"
	"crowddelivery/internal/core/domain/model/order"
	"crowddelivery/internal/pkg/errs"
	"crowddelivery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderParams are the merchant-supplied fields of a new order. The price is
// never part of them: it is computed from distance and weight.
type CreateOrderParams struct {
	Number             string
	MerchantID         int64
	CustomerName       string
	CustomerPhone      string
	DestinationAddress string
	Lat                float64
	Lng                float64
	Weight             float64
	Distance           float64
	Type               order.Type
	ScheduledTime      *time.Time
	Remarks            string
}

// CreateOrderCommand represents a merchant's request to publish a new order to the
// dispatch pool.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderParams{
//	    MerchantID: 1, CustomerName: "Li", CustomerPhone: "13800000000",
//	    DestinationAddress: "88 Century Avenue", Lat: 31.23, Lng: 121.47,
//	    Weight: 2, Distance: 3, Type: order.Instant,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	params      CreateOrderParams
	destination kernel.Location

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape: identifiers, coordinates,
// order type and the mandatory text fields. Business rules such as weight bounds
// are checked again when the order aggregate is created.
func NewCreateOrderCommand(p CreateOrderParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}
	if p.Type == "" {
		p.Type = order.Instant
	}

	if err := errors.Join(
		validateID("merchantId", p.MerchantID),
		cmd.setDestination(p.Lat, p.Lng),
		p.Type.Validate(),
		required("customerName", p.CustomerName),
		required("customerPhone", p.CustomerPhone),
		required("destinationAddress", p.DestinationAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.params = p
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) MerchantID() int64 { return c.params.MerchantID }
func (c CreateOrderCommand) Weight() float64   { return c.params.Weight }
func (c CreateOrderCommand) Distance() float64 { return c.params.Distance }

// Draft returns the order draft without a price.
func (c CreateOrderCommand) Draft() order.Draft {
	p := c.params
	return order.Draft{
		Number:             p.Number,
		MerchantID:         p.MerchantID,
		CustomerName:       p.CustomerName,
		CustomerPhone:      p.CustomerPhone,
		DestinationAddress: p.DestinationAddress,
		Destination:        c.destination,
		Weight:             p.Weight,
		Distance:           p.Distance,
		Type:               p.Type,
		ScheduledTime:      p.ScheduledTime,
		Remarks:            p.Remarks,
	}
}

func (c *CreateOrderCommand) setDestination(lat, lng float64) error {
	loc, err := kernel.NewLocation(lat, lng)
	if err != nil {
		return err
	}
	c.destination = loc
	return nil
}

func required(name, v string) error {
	if strings.TrimSpace(v) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
