package commands_test

import (
	"context"
	"sync"
	"time"

	"crowddelivery/internal/core/application/usecases/commands"
	"crowddelivery/internal/core/domain/model/chat"
	"crowddelivery/internal/core/domain/model/order"
	"crowddelivery/internal/core/domain/model/report"
	"crowddelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) (*order.Order, error) {
	args := m.Called(ctx, o)
	stored, _ := args.Get(0).(*order.Order)
	return stored, args.Error(1)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Apply(ctx context.Context, t order.Transition) (bool, error) {
	args := m.Called(ctx, t)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ListDueForExpiry(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	list, _ := args.Get(0).([]*order.Order)
	return list, args.Error(1)
}

func (m *MockOrderRepository) ListAccepted(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*order.Order)
	return list, args.Error(1)
}

type MockReportRepository struct{ mock.Mock }

func (m *MockReportRepository) Add(ctx context.Context, r *report.Report) (*report.Report, error) {
	args := m.Called(ctx, r)
	stored, _ := args.Get(0).(*report.Report)
	return stored, args.Error(1)
}

func (m *MockReportRepository) Get(ctx context.Context, id int64) (*report.Report, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*report.Report)
	return r, args.Error(1)
}

func (m *MockReportRepository) Update(ctx context.Context, r *report.Report) error {
	return m.Called(ctx, r).Error(0)
}

type MockChatRepository struct{ mock.Mock }

func (m *MockChatRepository) Add(ctx context.Context, msg *chat.Message) (*chat.Message, error) {
	args := m.Called(ctx, msg)
	stored, _ := args.Get(0).(*chat.Message)
	return stored, args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ReportRepository() ports.ReportRepository {
	args := m.Called()
	return args.Get(0).(ports.ReportRepository)
}

func orderUoWFactory(uow *MockUoW) commands.OrderUoWFactory {
	return commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return uow })
}

func reportUoWFactory(uow *MockUoW) commands.ReportUoWFactory {
	return commands.ReportUoWFactoryFunc(func() commands.ReportUoW { return uow })
}

type MockLocationCache struct{ mock.Mock }

func (m *MockLocationCache) Put(ctx context.Context, p ports.Position) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockLocationCache) Get(ctx context.Context, userID int64) (ports.Position, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(ports.Position), args.Error(1)
}

// published is one event captured by recordingPublisher.
type published struct {
	Channel string
	Event   string
	Payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, channel, event string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{Channel: channel, Event: event, Payload: payload})
	return p.err
}

func (p *recordingPublisher) Events() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published(nil), p.events...)
}

func (p *recordingPublisher) Channels(event string) []string {
	var channels []string
	for _, e := range p.Events() {
		if e.Event == event {
			channels = append(channels, e.Channel)
		}
	}
	return channels
}

type recordingScheduler struct {
	mu        sync.Mutex
	scheduled map[int64]time.Time
	cancelled []int64
}

func newRecordingScheduler() *recordingScheduler {
	return &recordingScheduler{scheduled: map[int64]time.Time{}}
}

func (s *recordingScheduler) Schedule(orderID int64, deadline time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled[orderID] = deadline
}

func (s *recordingScheduler) Cancel(orderID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scheduled, orderID)
	s.cancelled = append(s.cancelled, orderID)
}

func (s *recordingScheduler) Deadline(orderID int64) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.scheduled[orderID]
	return d, ok
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
