package order

import (
	"fmt"
	"slices"

	"crowddelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. Values are persisted verbatim.
//
// State transitions:
//
//	pending ──accept──> accepted ──pick_up──> picked_up ──deliver──> delivered
//	   │  ^                 │
//	   │  └──────accept─────┤ transfer / expire
//	   │                    v
//	   │               transferring
//	   │                    │
//	   └──cancel──> cancelled <──cancel──┘
//
// pending and transferring form the dispatch pool: orders any rider may accept.
// delivered and cancelled are terminal.
type Status string

const (
	// Pending is the initial status of a freshly created order.
	Pending Status = "pending"

	// Accepted means exactly one rider has claimed the order and must pick it up
	// before the accept window closes.
	Accepted Status = "accepted"

	// PickedUp means the assigned rider has collected the goods.
	PickedUp Status = "picked_up"

	// Delivered is terminal: the goods reached the customer.
	Delivered Status = "delivered"

	// Cancelled is terminal: the merchant withdrew the order before pickup.
	Cancelled Status = "cancelled"

	// Transferring means the order was released by its rider, either voluntarily
	// or because the accept window expired, and is back in the dispatch pool.
	Transferring Status = "transferring"
)

// Action names a transition of the state machine.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionPickUp   Action = "pick_up"
	ActionDeliver  Action = "deliver"
	ActionTransfer Action = "transfer"
	ActionExpire   Action = "expire"
	ActionCancel   Action = "cancel"
)

type edge struct {
	from []Status
	to   Status
}

// edges is the complete transition table. Every other (status, action) pair is rejected.
func edges() map[Action]edge {
	return map[Action]edge{
		ActionAccept:   {from: []Status{Pending, Transferring}, to: Accepted},
		ActionCancel:   {from: []Status{Pending, Transferring}, to: Cancelled},
		ActionPickUp:   {from: []Status{Accepted}, to: PickedUp},
		ActionTransfer: {from: []Status{Accepted}, to: Transferring},
		ActionExpire:   {from: []Status{Accepted}, to: Transferring},
		ActionDeliver:  {from: []Status{PickedUp}, to: Delivered},
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Accepted, PickedUp, Delivered, Cancelled, Transferring}
}

// DispatchPool returns the statuses of orders that riders may accept.
func DispatchPool() []Status {
	return []Status{Pending, Transferring}
}

// Validate checks that the status is one of the six known values.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if !slices.Contains(AllStatuses(), s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the persisted representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsDispatchable reports whether an order in this status can be accepted by a rider.
func (s Status) IsDispatchable() bool {
	return slices.Contains(DispatchPool(), s)
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// RequiresRider reports whether an order in this status must reference a rider.
// An order has a rider exactly when it is accepted, picked up or delivered.
func (s Status) RequiresRider() bool {
	return s == Accepted || s == PickedUp || s == Delivered
}

// RequiresDeadline reports whether an order in this status must carry a transfer deadline.
// Only accepted orders have a pending accept window.
func (s Status) RequiresDeadline() bool {
	return s == Accepted
}

// ValidateCanHaveRider validates the consistency between status and rider assignment.
//
// Business Rules:
//   - accepted, picked_up and delivered orders must have a rider
//   - pending, transferring and cancelled orders must not have a rider
func (s Status) ValidateCanHaveRider(rider bool) error {
	if rider && !s.RequiresRider() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a rider", s),
		)
	}
	if !rider && s.RequiresRider() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no rider", s),
		)
	}
	return nil
}

// ValidateCanHaveDeadline validates the consistency between status and transfer deadline.
func (s Status) ValidateCanHaveDeadline(deadline bool) error {
	if deadline != s.RequiresDeadline() {
		return errs.NewValueIsInvalidErrorWithCause(
			"transfer deadline is invalid",
			fmt.Errorf("%s orders must have deadline=%t", s, s.RequiresDeadline()),
		)
	}
	return nil
}

// CanTransitionTo reports whether some action moves an order from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, e := range edges() {
		if e.to == next && slices.Contains(e.from, s) {
			return true
		}
	}
	return false
}

// Apply returns the status reached by performing action from s.
//
// Returns:
//   - (next, nil) on a valid transition
//   - ("", error) if the action is unknown or not allowed from s
//
// Example:
//
//	next, err := order.Pending.Apply(order.ActionAccept) // next == order.Accepted
//	_, err = order.PickedUp.Apply(order.ActionCancel)     // err != nil
func (s Status) Apply(action Action) (Status, error) {
	e, ok := edges()[action]
	if !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("action is invalid", fmt.Errorf("%q is not a known action", string(action)))
	}
	if !slices.Contains(e.from, s) {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to %s", s, action),
		)
	}
	return e.to, nil
}

// Sources returns the statuses from which action may be performed.
func (a Action) Sources() []Status {
	return slices.Clone(edges()[a].from)
}

// Target returns the status an action leads to, or "" for an unknown action.
func (a Action) Target() Status {
	return edges()[a].to
}

// Validate checks that the action is part of the transition table.
func (a Action) Validate() error {
	if _, ok := edges()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action is invalid", fmt.Errorf("%q is not a known action", string(a)))
	}
	return nil
}

// String returns the action name.
func (a Action) String() string {
	return string(a)
}
