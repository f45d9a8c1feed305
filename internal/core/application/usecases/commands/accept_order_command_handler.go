package commands

import (
	"context"
	"time"

	"crowddelivery/internal/core/domain/model/order"
	"crowddelivery/internal/core/ports"
)

// AcceptOutcome is the explicit answer to every accept attempt.
type AcceptOutcome string

const (
	// AcceptWon means this rider now holds the order.
	AcceptWon AcceptOutcome = "won"
	// AcceptLost means the order was no longer in the dispatch pool: another rider
	// won the race, or the order was cancelled or already taken.
	AcceptLost AcceptOutcome = "lost"
)

// AcceptResult carries the outcome and, for a won race, the committed order.
type AcceptResult struct {
	Outcome AcceptOutcome
	Order   *order.Snapshot
}

// AcceptOrderCommandHandler arbitrates concurrent accepts. The decision is a single
// conditional write on the stored row; no in-process lock is involved, so the
// outcome is the same whichever process or goroutine issues the write.
type AcceptOrderCommandHandler struct {
	d      dispatcher
	window time.Duration
}

// NewAcceptOrderCommandHandler creates the handler. window is the accept window
// granted to the winner before the order returns to the pool.
func NewAcceptOrderCommandHandler(deps DispatchDeps, window time.Duration) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{d: newDispatcher(deps), window: window}
}

// Handle processes the accept command.
//
// Returns:
//   - AcceptWon with the committed order, after publishing order:updated and arming the deadline timer
//   - AcceptLost when the order exists but is not dispatchable
//   - ObjectNotFoundError when the order does not exist
//   - UnavailableError when the store fails; nothing is retried
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (AcceptResult, error) {
	if err := cmd.Validate(); err != nil {
		return AcceptResult{}, err
	}

	t, err := order.NewAcceptTransition(cmd.OrderID(), cmd.RiderID(), h.d.now(), h.window)
	if err != nil {
		return AcceptResult{}, err
	}

	committed, applied, err := h.d.apply(ctx, t)
	switch {
	case applied && err != nil:
		// The write is committed; the sweep covers the deadline without a timer.
		h.d.Metrics.IncAccept(string(AcceptWon))
		h.d.Logger.WarnContext(ctx, "accepted order could not be reloaded", "order_id", t.OrderID, "error", err)
		return AcceptResult{Outcome: AcceptWon}, nil
	case err != nil:
		return AcceptResult{}, err
	case !applied:
		h.d.Metrics.IncAccept(string(AcceptLost))
		return AcceptResult{Outcome: AcceptLost}, nil
	}

	h.d.Metrics.IncAccept(string(AcceptWon))
	h.d.schedule(committed)
	h.d.publishOrder(ctx, ports.EventOrderUpdated, committed)

	s := committed.Snapshot()
	return AcceptResult{Outcome: AcceptWon, Order: &s}, nil
}
