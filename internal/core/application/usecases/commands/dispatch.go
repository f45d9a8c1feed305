package commands

import (
	"context"
	"log/slog"
	"time"

	"crowddelivery/internal/core/domain/model/order"
	"crowddelivery/internal/core/ports"
	"crowddelivery/internal/pkg/errs"
	"crowddelivery/internal/pkg/metrics"
)

// DispatchDeps groups the collaborators shared by the order transition handlers.
// Metrics, Scheduler and Clock are optional.
type DispatchDeps struct {
	Orders    ports.OrderRepository
	Publisher ports.EventPublisher
	Scheduler ports.DeadlineScheduler
	Metrics   *metrics.Dispatch
	Logger    *slog.Logger
	Clock     func() time.Time
}

const (
	resultApplied  = "applied"
	resultRejected = "rejected"
	resultError    = "error"
)

// dispatcher runs transitions against the store and publishes their results.
type dispatcher struct {
	DispatchDeps
}

func newDispatcher(deps DispatchDeps) dispatcher {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return dispatcher{DispatchDeps: deps}
}

func (d dispatcher) now() time.Time {
	return d.Clock().UTC()
}

// apply executes t with one conditional write.
//
// Returns:
//   - (order, true, nil) with the committed row when the transition applied
//   - (nil, false, nil) when the order exists but did not satisfy the guard
//   - (nil, false, ObjectNotFoundError) when the order does not exist
//   - (nil, false, UnavailableError) on storage failure
func (d dispatcher) apply(ctx context.Context, t order.Transition) (*order.Order, bool, error) {
	applied, err := d.Orders.Apply(ctx, t)
	if err != nil {
		d.Metrics.IncTransition(t.Action.String(), resultError)
		return nil, false, err
	}

	if !applied {
		exists, err := d.Orders.Exists(ctx, t.OrderID)
		if err != nil {
			return nil, false, err
		}
		if !exists {
			return nil, false, errs.NewObjectNotFoundError("order", t.OrderID)
		}
		d.Metrics.IncTransition(t.Action.String(), resultRejected)
		return nil, false, nil
	}

	d.Metrics.IncTransition(t.Action.String(), resultApplied)
	committed, err := d.Orders.Get(ctx, t.OrderID)
	if err != nil {
		return nil, true, err
	}
	return committed, true, nil
}

// applyOrReject is apply for actions where a guard mismatch is an error. The
// rejection names the first guard clause the current row fails.
//
// The row read before the write is only a fallback: when the transition commits
// but the row cannot be reloaded, the committed state is projected from it and
// published like a reloaded row. The write itself stays conditional.
func (d dispatcher) applyOrReject(ctx context.Context, t order.Transition) (*order.Order, error) {
	before, err := d.Orders.Get(ctx, t.OrderID)
	if err != nil {
		return nil, err
	}

	committed, applied, err := d.apply(ctx, t)
	switch {
	case applied && err != nil:
		d.Logger.WarnContext(ctx, "transitioned order could not be reloaded, using projected state",
			"action", t.Action, "order_id", t.OrderID, "error", err)
		if perr := before.Apply(t); perr != nil {
			// The row changed between the read and the write; nothing trustworthy to return.
			return nil, errs.NewUnavailableError("order", err)
		}
		committed = before
	case err != nil:
		return nil, err
	case !applied:
		current, err := d.Orders.Get(ctx, t.OrderID)
		if err != nil {
			return nil, err
		}
		return nil, t.Reject(t.Guard.Check(current.Snapshot()))
	}

	d.publishOrder(ctx, ports.EventOrderUpdated, committed)
	return committed, nil
}

// publishOrder sends the order to the dispatch pool broadcast and to the merchant
// and rider involved. Publication failures never undo a committed transition.
func (d dispatcher) publishOrder(ctx context.Context, event string, o *order.Order) {
	s := o.Snapshot()
	channels := []string{ports.BroadcastChannel, ports.UserChannel(s.MerchantID)}
	if s.RiderID != nil {
		channels = append(channels, ports.UserChannel(*s.RiderID))
	}

	for _, ch := range channels {
		if err := d.Publisher.Publish(ctx, ch, event, s); err != nil {
			d.Logger.WarnContext(ctx, "publish failed", "event", event, "channel", ch, "order_id", s.ID, "error", err)
		}
	}
}

func (d dispatcher) schedule(o *order.Order) {
	if d.Scheduler == nil || o.TransferDeadline() == nil {
		return
	}
	d.Scheduler.Schedule(o.ID(), *o.TransferDeadline())
}

func (d dispatcher) cancelTimer(orderID int64) {
	if d.Scheduler == nil {
		return
	}
	d.Scheduler.Cancel(orderID)
}
