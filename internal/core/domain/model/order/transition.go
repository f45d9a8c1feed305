package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"crowddelivery/internal/pkg/errs"
)

// Guard is the precondition of a Transition. A stored order satisfies the guard when
// its status is one of From and every non-nil field matches.
type Guard struct {
	From []Status

	// RiderID requires the order to be held by this rider.
	RiderID *int64

	// MerchantID requires the order to belong to this merchant.
	MerchantID *int64

	// DeadlineAfter requires transfer_deadline to be strictly later than this instant.
	DeadlineAfter *time.Time

	// DeadlineDue requires transfer_deadline to be at or before this instant.
	DeadlineDue *time.Time
}

// Effect lists the fields a Transition writes. Nil pointers leave a field untouched
// unless the matching Clear flag is set.
type Effect struct {
	Status Status

	RiderID    *int64
	ClearRider bool

	TransferDeadline *time.Time
	ClearDeadline    bool

	AcceptedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
}

// Transition is a single guarded state change of one order. It is pure data:
// the order repository executes it as one conditional write, and Order.Apply
// performs it in memory.
type Transition struct {
	OrderID int64
	Action  Action
	Guard   Guard
	Effect  Effect
}

// NewAcceptTransition claims a dispatchable order for riderID. The accept window
// starts at now and the transfer deadline is now+window.
func NewAcceptTransition(orderID, riderID int64, now time.Time, window time.Duration) (Transition, error) {
	if err := errors.Join(validateID("orderId", orderID), validateID("riderId", riderID)); err != nil {
		return Transition{}, err
	}
	if window <= 0 {
		return Transition{}, errs.NewValueIsInvalidErrorWithCause("window", fmt.Errorf("%s is not positive", window))
	}

	now = now.UTC()
	deadline := now.Add(window)
	return Transition{
		OrderID: orderID,
		Action:  ActionAccept,
		Guard:   Guard{From: ActionAccept.Sources()},
		Effect: Effect{
			Status:           Accepted,
			RiderID:          &riderID,
			TransferDeadline: &deadline,
			AcceptedAt:       &now,
		},
	}, nil
}

// NewPickUpTransition confirms pickup by the assigned rider before the deadline passes.
func NewPickUpTransition(orderID, riderID int64, now time.Time) (Transition, error) {
	if err := errors.Join(validateID("orderId", orderID), validateID("riderId", riderID)); err != nil {
		return Transition{}, err
	}

	now = now.UTC()
	return Transition{
		OrderID: orderID,
		Action:  ActionPickUp,
		Guard: Guard{
			From:          ActionPickUp.Sources(),
			RiderID:       &riderID,
			DeadlineAfter: &now,
		},
		Effect: Effect{
			Status:        PickedUp,
			ClearDeadline: true,
			PickedUpAt:    &now,
		},
	}, nil
}

// NewDeliverTransition confirms delivery by the assigned rider.
func NewDeliverTransition(orderID, riderID int64, now time.Time) (Transition, error) {
	if err := errors.Join(validateID("orderId", orderID), validateID("riderId", riderID)); err != nil {
		return Transition{}, err
	}

	now = now.UTC()
	return Transition{
		OrderID: orderID,
		Action:  ActionDeliver,
		Guard: Guard{
			From:    ActionDeliver.Sources(),
			RiderID: &riderID,
		},
		Effect: Effect{
			Status:      Delivered,
			DeliveredAt: &now,
		},
	}, nil
}

// NewTransferTransition releases an accepted order back to the dispatch pool
// at the request of its rider.
func NewTransferTransition(orderID, riderID int64) (Transition, error) {
	if err := errors.Join(validateID("orderId", orderID), validateID("riderId", riderID)); err != nil {
		return Transition{}, err
	}

	return Transition{
		OrderID: orderID,
		Action:  ActionTransfer,
		Guard: Guard{
			From:    ActionTransfer.Sources(),
			RiderID: &riderID,
		},
		Effect: Effect{
			Status:        Transferring,
			ClearRider:    true,
			ClearDeadline: true,
		},
	}, nil
}

// NewExpireTransition reclaims an accepted order whose deadline is at or before now.
// Applying it twice is harmless: the second attempt no longer matches the guard.
func NewExpireTransition(orderID int64, now time.Time) (Transition, error) {
	if err := validateID("orderId", orderID); err != nil {
		return Transition{}, err
	}

	now = now.UTC()
	return Transition{
		OrderID: orderID,
		Action:  ActionExpire,
		Guard: Guard{
			From:        ActionExpire.Sources(),
			DeadlineDue: &now,
		},
		Effect: Effect{
			Status:        Transferring,
			ClearRider:    true,
			ClearDeadline: true,
		},
	}, nil
}

// NewCancelTransition withdraws a dispatchable order on behalf of its merchant.
func NewCancelTransition(orderID, merchantID int64) (Transition, error) {
	if err := errors.Join(validateID("orderId", orderID), validateID("merchantId", merchantID)); err != nil {
		return Transition{}, err
	}

	return Transition{
		OrderID: orderID,
		Action:  ActionCancel,
		Guard: Guard{
			From:       ActionCancel.Sources(),
			MerchantID: &merchantID,
		},
		Effect: Effect{Status: Cancelled},
	}, nil
}

// Check reports why snapshot s does not satisfy the guard, or nil if it does.
func (g Guard) Check(s Snapshot) error {
	switch {
	case !slices.Contains(g.From, s.Status):
		return fmt.Errorf("status is %s", s.Status)
	case g.RiderID != nil && (s.RiderID == nil || *s.RiderID != *g.RiderID):
		return fmt.Errorf("order is not held by rider %d", *g.RiderID)
	case g.MerchantID != nil && s.MerchantID != *g.MerchantID:
		return fmt.Errorf("order does not belong to merchant %d", *g.MerchantID)
	case g.DeadlineAfter != nil && (s.TransferDeadline == nil || !s.TransferDeadline.After(*g.DeadlineAfter)):
		return errors.New("accept window has closed")
	case g.DeadlineDue != nil && (s.TransferDeadline == nil || s.TransferDeadline.After(*g.DeadlineDue)):
		return errors.New("accept window is still open")
	}
	return nil
}

// Reject builds the guard-violation error for this transition using the reason
// reported by Guard.Check.
func (t Transition) Reject(reason error) error {
	if reason == nil {
		return errs.NewTransitionRejectedError(t.Action.String(), t.OrderID, "")
	}
	return errs.NewTransitionRejectedError(t.Action.String(), t.OrderID, reason.Error())
}

func validateID(name string, id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is not a positive identifier", id))
	}
	return nil
}
