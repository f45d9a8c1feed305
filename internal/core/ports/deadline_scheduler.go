package ports

import "time"

// DeadlineScheduler arms in-process timers for accept-window deadlines.
// Timers only trigger an early expiry attempt; correctness never depends on them,
// because the persisted deadline is re-checked by the expiry write and by the sweep.
type DeadlineScheduler interface {
	// Schedule arms (or re-arms) the timer of an order.
	Schedule(orderID int64, deadline time.Time)

	// Cancel disarms the timer of an order, if any.
	Cancel(orderID int64)
}
