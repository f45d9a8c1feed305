// Package eventbus fans real-time events out to in-process subscribers.
//
// Events are published on named channels ("broadcast", "user:<id>", "order:<id>").
// A Subscription is joined to the broadcast channel when it is created and can join
// or leave other channels at any time. It only sees events published after it joined.
//
// Publish never waits for subscribers. Every subscription owns a bounded mailbox
// drained by its own goroutine; a subscriber that lets its mailbox fill up is
// disconnected with ErrSlowSubscriber and has to resynchronize like any reconnecting
// client. Events published by one goroutine on one channel reach every subscriber
// in publication order.
package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"crowddelivery/internal/core/ports"
	"crowddelivery/internal/pkg/metrics"
)

const DefaultQueueSize = 256

var (
	ErrSlowSubscriber = errors.New("subscriber mailbox overflow")
	ErrBusClosed      = errors.New("event bus is closed")
)

// Event is one published message as delivered to a subscriber.
type Event struct {
	Channel string `json:"-"`
	Name    string `json:"event"`
	Data    any    `json:"data"`
}

// Bus is an in-process publish/subscribe hub. The zero value is not usable; use New.
type Bus struct {
	queueSize int
	metrics   *metrics.Bus
	logger    *slog.Logger

	mu       sync.RWMutex
	channels map[string]map[*Subscription]struct{}
	subs     map[*Subscription]struct{}
	closed   bool
}

// New creates a bus whose subscriptions buffer at most queueSize undelivered
// events. A non-positive queueSize means DefaultQueueSize. m may be nil.
func New(queueSize int, m *metrics.Bus, logger *slog.Logger) *Bus {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		queueSize: queueSize,
		metrics:   m,
		logger:    logger.With("component", "eventbus"),
		channels:  make(map[string]map[*Subscription]struct{}),
		subs:      make(map[*Subscription]struct{}),
	}
}

var _ ports.EventPublisher = (*Bus)(nil)

// Publish enqueues the event for every subscriber of channel and returns
// immediately. It fails only when the bus is closed.
func (b *Bus) Publish(_ context.Context, channel, event string, payload any) error {
	ev := Event{Channel: channel, Name: event, Data: payload}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	var overflowed []*Subscription
	for s := range b.channels[channel] {
		if !s.enqueue(ev) {
			overflowed = append(overflowed, s)
		}
	}
	b.mu.RUnlock()

	b.metrics.IncPublished(event)
	for _, s := range overflowed {
		b.logger.Warn("disconnecting slow subscriber", "subscription", s.id, "channel", channel, "event", event)
		b.metrics.IncDropped()
		s.closeWithError(ErrSlowSubscriber)
	}
	return nil
}

// Subscribe opens a subscription joined to the broadcast channel. On a closed bus
// the returned subscription is already closed and Err reports ErrBusClosed.
func (b *Bus) Subscribe() *Subscription {
	s := newSubscription(b)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		s.closeWithError(ErrBusClosed)
		close(s.out)
		return s
	}
	b.subs[s] = struct{}{}
	b.joinLocked(s, ports.BroadcastChannel)
	b.mu.Unlock()

	b.metrics.SubscriberOpened()
	go s.pump()
	return s
}

// Close disconnects every subscriber. Later publications fail with ErrBusClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	subs := make([]*Subscription, 0, len(b.subs))
	for s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.closeWithError(ErrBusClosed)
	}
}

// Subscribers returns the number of open subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bus) join(s *Subscription, channel string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, open := b.subs[s]; !open {
		return
	}
	b.joinLocked(s, channel)
}

func (b *Bus) joinLocked(s *Subscription, channel string) {
	members, ok := b.channels[channel]
	if !ok {
		members = make(map[*Subscription]struct{})
		b.channels[channel] = members
	}
	members[s] = struct{}{}
}

func (b *Bus) leave(s *Subscription, channel string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.leaveLocked(s, channel)
}

func (b *Bus) leaveLocked(s *Subscription, channel string) {
	members := b.channels[channel]
	delete(members, s)
	if len(members) == 0 {
		delete(b.channels, channel)
	}
}

// remove detaches s from every channel. It reports whether s was still registered.
func (b *Bus) remove(s *Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, open := b.subs[s]; !open {
		return false
	}
	delete(b.subs, s)
	for channel, members := range b.channels {
		if _, ok := members[s]; ok {
			b.leaveLocked(s, channel)
		}
	}
	return true
}
