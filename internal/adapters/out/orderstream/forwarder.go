// Package orderstream mirrors order changes from the event bus to a Kafka topic so
// that systems outside the dispatch core can follow order state.
package orderstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"crowddelivery/internal/core/domain/model/order"
	"crowddelivery/internal/core/ports"
	"crowddelivery/internal/eventbus"

	"github.com/segmentio/kafka-go"
)

const writeTimeout = 10 * time.Second

// Config selects the brokers and the topic of the order-changed stream.
type Config struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Record is the value written for every order change.
type Record struct {
	Event      string         `json:"event"`
	Order      order.Snapshot `json:"order"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// Forwarder writes every order:new and order:updated broadcast to Kafka, keyed by
// order ID so all changes of one order land in one partition in order. Write
// failures are logged and dropped; they never affect dispatch.
type Forwarder struct {
	bus    *eventbus.Bus
	writer messageWriter
	logger *slog.Logger
	now    func() time.Time
}

// NewForwarder creates a forwarder with a kafka-go writer using the hash balancer.
func NewForwarder(bus *eventbus.Bus, cfg Config, logger *slog.Logger) (*Forwarder, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
	}
	return newForwarder(bus, w, logger), nil
}

func newForwarder(bus *eventbus.Bus, w messageWriter, logger *slog.Logger) *Forwarder {
	return &Forwarder{
		bus:    bus,
		writer: w,
		logger: logger.With("component", "order_stream"),
		now:    time.Now,
	}
}

// Run forwards events until ctx is done or the bus closes. A subscription dropped
// for falling behind is replaced; changes published in between are lost.
func (f *Forwarder) Run(ctx context.Context) error {
	for {
		sub := f.bus.Subscribe()
		err := f.drain(ctx, sub)
		sub.Close()

		switch {
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, eventbus.ErrSlowSubscriber):
			f.logger.WarnContext(ctx, "order stream fell behind, resubscribing")
		default:
			return err
		}
	}
}

func (f *Forwarder) drain(ctx context.Context, sub *eventbus.Subscription) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-sub.Events():
			if !ok {
				return sub.Err()
			}
			f.forward(ctx, ev)
		}
	}
}

func (f *Forwarder) forward(ctx context.Context, ev eventbus.Event) {
	if ev.Channel != ports.BroadcastChannel || (ev.Name != ports.EventOrderNew && ev.Name != ports.EventOrderUpdated) {
		return
	}
	s, ok := ev.Data.(order.Snapshot)
	if !ok {
		f.logger.WarnContext(ctx, "unexpected order event payload", "event", ev.Name, "type", fmt.Sprintf("%T", ev.Data))
		return
	}

	value, err := json.Marshal(Record{Event: ev.Name, Order: s, OccurredAt: f.now().UTC()})
	if err != nil {
		f.logger.ErrorContext(ctx, "failed to encode order record", "order_id", s.ID, "error", err)
		return
	}

	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	msg := kafka.Message{Key: []byte(strconv.FormatInt(s.ID, 10)), Value: value}
	if err := f.writer.WriteMessages(wctx, msg); err != nil {
		f.logger.ErrorContext(ctx, "failed to write order record", "order_id", s.ID, "event", ev.Name, "error", err)
	}
}

// Close flushes and closes the Kafka writer.
func (f *Forwarder) Close() error {
	return f.writer.Close()
}
