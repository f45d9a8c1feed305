package eventbus

import (
	"sync"

	"github.com/google/uuid"
)

// Subscription receives the events of the channels it joined. It is bound to the
// lifetime of one client connection and must be closed with Close.
type Subscription struct {
	id  string
	bus *Bus

	mu     sync.Mutex
	queue  []Event
	err    error
	closed bool

	wake chan struct{}
	done chan struct{}
	out  chan Event
}

func newSubscription(b *Bus) *Subscription {
	return &Subscription{
		id:   uuid.NewString(),
		bus:  b,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
		out:  make(chan Event),
	}
}

// ID identifies the subscription in logs.
func (s *Subscription) ID() string { return s.id }

// Join subscribes to channel. Joining twice is a no-op.
func (s *Subscription) Join(channel string) { s.bus.join(s, channel) }

// Leave unsubscribes from channel. Events already queued are still delivered.
func (s *Subscription) Leave(channel string) { s.bus.leave(s, channel) }

// Events delivers queued events in order. The channel is closed after the
// subscription ends; Err tells why.
func (s *Subscription) Events() <-chan Event { return s.out }

// Done is closed when the subscription ends.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Err returns ErrSlowSubscriber or ErrBusClosed when the bus ended the
// subscription, and nil while it is open or after a regular Close.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close ends the subscription. It is safe to call more than once.
func (s *Subscription) Close() { s.closeWithError(nil) }

// enqueue appends ev to the mailbox. It returns false when the mailbox is full.
func (s *Subscription) enqueue(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	if len(s.queue) >= s.bus.queueSize {
		return false
	}
	s.queue = append(s.queue, ev)

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

func (s *Subscription) closeWithError(err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.err = err
	s.queue = nil
	close(s.done)
	s.mu.Unlock()

	if s.bus.remove(s) {
		s.bus.metrics.SubscriberClosed()
	}
}

// pump moves events from the mailbox to the out channel until the subscription ends.
func (s *Subscription) pump() {
	defer close(s.out)

	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		for {
			s.mu.Lock()
			if len(s.queue) == 0 {
				s.mu.Unlock()
				break
			}
			ev := s.queue[0]
			s.queue[0] = Event{}
			s.queue = s.queue[1:]
			s.mu.Unlock()

			select {
			case s.out <- ev:
			case <-s.done:
				return
			}
		}
	}
}
