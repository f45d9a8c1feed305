package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"crowddelivery/internal/core/ports"
)

const expireTimeout = 5 * time.Second

// ExpireFunc tries to expire the accept window of one order. It reports whether
// the order was moved back to the dispatch pool.
type ExpireFunc func(ctx context.Context, orderID int64) (bool, error)

// DeadlineScheduler keeps one timer per accepted order and calls the expire
// function when the deadline passes. Timers only shorten the delay until an order
// returns to the pool; a lost or failed timer is covered by the sweep job.
type DeadlineScheduler struct {
	expire ExpireFunc
	logger *slog.Logger

	mu      sync.Mutex
	timers  map[int64]*armed
	stopped bool
	now     func() time.Time
}

type armed struct {
	timer *time.Timer
}

var _ ports.DeadlineScheduler = (*DeadlineScheduler)(nil)

// NewDeadlineScheduler creates a scheduler that calls expire from timer goroutines.
func NewDeadlineScheduler(expire ExpireFunc, logger *slog.Logger) *DeadlineScheduler {
	return &DeadlineScheduler{
		expire: expire,
		logger: logger.With("component", "deadline_scheduler"),
		timers: make(map[int64]*armed),
		now:    time.Now,
	}
}

// Schedule arms the timer of orderID, replacing a previous one. A deadline in the
// past fires immediately.
func (s *DeadlineScheduler) Schedule(orderID int64, deadline time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	if prev, ok := s.timers[orderID]; ok {
		prev.timer.Stop()
	}

	a := &armed{}
	a.timer = time.AfterFunc(deadline.Sub(s.now()), func() { s.fire(orderID, a) })
	s.timers[orderID] = a
}

// Cancel stops the timer of orderID, if any.
func (s *DeadlineScheduler) Cancel(orderID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.timers[orderID]; ok {
		a.timer.Stop()
		delete(s.timers, orderID)
	}
}

// Pending returns the number of armed timers.
func (s *DeadlineScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop disarms every timer. Later calls to Schedule are ignored.
func (s *DeadlineScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, a := range s.timers {
		a.timer.Stop()
		delete(s.timers, id)
	}
}

func (s *DeadlineScheduler) fire(orderID int64, a *armed) {
	s.mu.Lock()
	if s.timers[orderID] != a {
		// Re-armed or cancelled after this timer fired.
		s.mu.Unlock()
		return
	}
	delete(s.timers, orderID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), expireTimeout)
	defer cancel()

	if _, err := s.expire(ctx, orderID); err != nil {
		s.logger.WarnContext(ctx, "deadline timer could not expire order, leaving it to the sweep",
			"order_id", orderID, "error", err)
	}
}
