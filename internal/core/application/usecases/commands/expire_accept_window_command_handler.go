package commands

import (
	"context"
	"fmt"

	"crowddelivery/internal/core/domain/model/order"
	"crowddelivery/internal/core/ports"

	"go.uber.org/multierr"
)

const (
	triggerTimer = "timer"
	triggerSweep = "sweep"
)

// ExpireAcceptWindowCommandHandler returns one overdue accepted order to the pool.
// It is idempotent: once the order was picked up, transferred or already expired,
// the guarded write matches nothing and the call is a no-op.
type ExpireAcceptWindowCommandHandler struct {
	d dispatcher
}

func NewExpireAcceptWindowCommandHandler(deps DispatchDeps) ExpireAcceptWindowCommandHandler {
	return ExpireAcceptWindowCommandHandler{d: newDispatcher(deps)}
}

// Handle reports whether this call moved the order to transferring.
func (h ExpireAcceptWindowCommandHandler) Handle(ctx context.Context, cmd ExpireAcceptWindowCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}
	return expire(ctx, h.d, cmd.OrderID(), triggerTimer)
}

// ExpireAcceptWindowsCommandHandler scans for every overdue accepted order and
// expires each one. Rows changed concurrently are skipped by the guard, so the
// sweep can run while timers and riders act on the same orders.
type ExpireAcceptWindowsCommandHandler struct {
	d dispatcher
}

func NewExpireAcceptWindowsCommandHandler(deps DispatchDeps) ExpireAcceptWindowsCommandHandler {
	return ExpireAcceptWindowsCommandHandler{d: newDispatcher(deps)}
}

// ExpiryFailuresError is returned by a sweep whose scan succeeded but where some
// orders could not be expired. Those orders stay overdue for the next sweep.
type ExpiryFailuresError struct {
	Err error
}

func (e *ExpiryFailuresError) Error() string { return e.Err.Error() }

func (e *ExpiryFailuresError) Unwrap() error { return e.Err }

// Failed returns the number of orders that could not be expired.
func (e *ExpiryFailuresError) Failed() int { return len(multierr.Errors(e.Err)) }

// Handle returns the number of orders this sweep expired. A failure on one order
// does not stop the others; they are combined into an ExpiryFailuresError. A
// failed scan is returned as is.
func (h ExpireAcceptWindowsCommandHandler) Handle(ctx context.Context, cmd ExpireAcceptWindowsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	due, err := h.d.Orders.ListDueForExpiry(ctx, h.d.now())
	if err != nil {
		return 0, err
	}

	var (
		expired int
		errs    error
	)
	for _, o := range due {
		ok, err := expire(ctx, h.d, o.ID(), triggerSweep)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("expire order %d: %w", o.ID(), err))
			continue
		}
		if ok {
			expired++
			h.d.cancelTimer(o.ID())
		}
	}

	if errs != nil {
		return expired, &ExpiryFailuresError{Err: errs}
	}
	return expired, nil
}

func expire(ctx context.Context, d dispatcher, orderID int64, trigger string) (bool, error) {
	t, err := order.NewExpireTransition(orderID, d.now())
	if err != nil {
		return false, err
	}

	committed, applied, err := d.apply(ctx, t)
	if applied {
		d.Metrics.AddExpired(trigger, 1)
	}
	switch {
	case applied && err != nil:
		d.Logger.WarnContext(ctx, "expired order could not be reloaded", "order_id", orderID, "error", err)
		return true, nil
	case err != nil:
		return false, err
	case !applied:
		return false, nil
	}

	d.Logger.InfoContext(ctx, "accept window expired", "order_id", orderID, "trigger", trigger)
	d.publishOrder(ctx, ports.EventOrderUpdated, committed)
	return true, nil
}
