package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"crowddelivery/internal/adapters/out/persistence/orderrepo"
	"crowddelivery/internal/core/domain/model/order"
	"crowddelivery/internal/pkg/errs"
	"crowddelivery/internal/testutil"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"gorm.io/gorm"
)

const window = 180 * time.Second

// OrderRepositoryTestSuite runs against SQLite and, outside of -short, against a
// PostgreSQL container.
type OrderRepositoryTestSuite struct {
	suite.Suite
	postgres   bool
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	now        time.Time
}

func (suite *OrderRepositoryTestSuite) SetupSuite() {
	if suite.postgres {
		suite.db = testutil.NewPostgresDB(suite.T())
	} else {
		suite.db = testutil.NewSQLiteDB(suite.T())
	}
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	testutil.Truncate(suite.T(), suite.db)
	suite.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (suite *OrderRepositoryTestSuite) TestAdd_AssignsIDAndPersists() {
	ctx := context.Background()

	stored, err := suite.repository.Add(ctx, testutil.NewOrder(suite.T(), 7, suite.now))
	suite.Require().NoError(err)
	suite.Positive(stored.ID())

	loaded, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(int64(7), loaded.MerchantID())
	suite.Nil(loaded.RiderID())
	suite.True(loaded.Price().Equal(stored.Price()))
	suite.WithinDuration(suite.now, loaded.CreatedAt(), time.Millisecond)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryTestSuite) TestAdd_DuplicateNumber_IsInvalid() {
	ctx := context.Background()

	draft := testutil.Draft(suite.T(), 7)
	draft.Number = "ORD-DUP"
	first, err := order.NewOrder(draft, suite.now)
	suite.Require().NoError(err)
	second, err := order.NewOrder(draft, suite.now)
	suite.Require().NoError(err)

	_, err = suite.repository.Add(ctx, first)
	suite.Require().NoError(err)

	_, err = suite.repository.Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryTestSuite) TestAdd_NotConstructed_ReturnsError() {
	_, err := suite.repository.Add(context.Background(), &order.Order{})
	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), 4242)

	suite.Nil(retrieved)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryTestSuite) TestExists() {
	ctx := context.Background()
	stored := suite.add()

	ok, err := suite.repository.Exists(ctx, stored.ID())
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = suite.repository.Exists(ctx, stored.ID()+100)
	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *OrderRepositoryTestSuite) TestApply_Lifecycle() {
	ctx := context.Background()
	stored := suite.add()
	id := stored.ID()

	suite.apply(order.NewAcceptTransition(id, 11, suite.now, window))
	accepted := suite.get(id)
	suite.Equal(order.Accepted, accepted.Status())
	suite.Equal(int64(11), *accepted.RiderID())
	suite.Require().NotNil(accepted.TransferDeadline())
	suite.WithinDuration(suite.now.Add(window), *accepted.TransferDeadline(), time.Millisecond)

	suite.apply(order.NewPickUpTransition(id, 11, suite.now.Add(time.Minute)))
	pickedUp := suite.get(id)
	suite.Equal(order.PickedUp, pickedUp.Status())
	suite.Nil(pickedUp.TransferDeadline())
	suite.Equal(int64(11), *pickedUp.RiderID())

	suite.apply(order.NewDeliverTransition(id, 11, suite.now.Add(10*time.Minute)))
	delivered := suite.get(id).Snapshot()
	suite.Equal(order.Delivered, delivered.Status)
	suite.NotNil(delivered.DeliveredAt)

	// terminal
	t, err := order.NewCancelTransition(id, 7)
	suite.Require().NoError(err)
	applied, err := suite.repository.Apply(ctx, t)
	suite.Require().NoError(err)
	suite.False(applied)
}

func (suite *OrderRepositoryTestSuite) TestApply_GuardMismatch_LeavesRowUntouched() {
	ctx := context.Background()
	id := suite.add().ID()
	suite.apply(order.NewAcceptTransition(id, 11, suite.now, window))

	testCases := []struct {
		name string
		make func() (order.Transition, error)
	}{
		{"pickup by another rider", func() (order.Transition, error) {
			return order.NewPickUpTransition(id, 12, suite.now.Add(time.Second))
		}},
		{"pickup after the deadline", func() (order.Transition, error) {
			return order.NewPickUpTransition(id, 11, suite.now.Add(window))
		}},
		{"expiry before the deadline", func() (order.Transition, error) {
			return order.NewExpireTransition(id, suite.now.Add(window-time.Second))
		}},
		{"transfer by another rider", func() (order.Transition, error) {
			return order.NewTransferTransition(id, 12)
		}},
		{"second accept", func() (order.Transition, error) {
			return order.NewAcceptTransition(id, 12, suite.now.Add(time.Second), window)
		}},
		{"cancel after accept", func() (order.Transition, error) {
			return order.NewCancelTransition(id, 7)
		}},
		{"deliver before pickup", func() (order.Transition, error) {
			return order.NewDeliverTransition(id, 11, suite.now.Add(time.Second))
		}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			t, err := tc.make()
			suite.Require().NoError(err)

			applied, err := suite.repository.Apply(ctx, t)
			suite.Require().NoError(err)
			suite.False(applied)

			current := suite.get(id)
			suite.Equal(order.Accepted, current.Status())
			suite.Equal(int64(11), *current.RiderID())
		})
	}
}

func (suite *OrderRepositoryTestSuite) TestApply_UnknownOrder_NotApplied() {
	t, err := order.NewAcceptTransition(999, 11, suite.now, window)
	suite.Require().NoError(err)

	applied, err := suite.repository.Apply(context.Background(), t)
	suite.Require().NoError(err)
	suite.False(applied)
}

func (suite *OrderRepositoryTestSuite) TestApply_ExpiryThenReaccept() {
	id := suite.add().ID()
	suite.apply(order.NewAcceptTransition(id, 11, suite.now, window))

	due := suite.now.Add(window + time.Second)
	suite.apply(order.NewExpireTransition(id, due))
	expired := suite.get(id)
	suite.Equal(order.Transferring, expired.Status())
	suite.Nil(expired.RiderID())
	suite.Nil(expired.TransferDeadline())

	// a second expiry matches nothing
	t, err := order.NewExpireTransition(id, due)
	suite.Require().NoError(err)
	applied, err := suite.repository.Apply(context.Background(), t)
	suite.Require().NoError(err)
	suite.False(applied)

	suite.apply(order.NewAcceptTransition(id, 12, due, window))
	suite.Equal(int64(12), *suite.get(id).RiderID())
}

func (suite *OrderRepositoryTestSuite) TestApply_ConcurrentAccepts_ExactlyOneWins() {
	ctx := context.Background()
	id := suite.add().ID()

	const riders = 16
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		won  []int64
		errc = make(chan error, riders)
	)
	for rider := int64(1); rider <= riders; rider++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t, err := order.NewAcceptTransition(id, rider, suite.now, window)
			if err != nil {
				errc <- err
				return
			}
			applied, err := suite.repository.Apply(ctx, t)
			if err != nil {
				errc <- err
				return
			}
			if applied {
				mu.Lock()
				won = append(won, rider)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	close(errc)

	for err := range errc {
		suite.Require().NoError(err)
	}
	suite.Require().Len(won, 1)

	stored := suite.get(id)
	suite.Equal(order.Accepted, stored.Status())
	suite.Equal(won[0], *stored.RiderID())
}

func (suite *OrderRepositoryTestSuite) TestListDueForExpiry_And_ListAccepted() {
	ctx := context.Background()

	overdue := suite.add().ID()
	suite.apply(order.NewAcceptTransition(overdue, 11, suite.now.Add(-window-time.Second), window))

	open := suite.add().ID()
	suite.apply(order.NewAcceptTransition(open, 12, suite.now, window))

	_ = suite.add()

	due, err := suite.repository.ListDueForExpiry(ctx, suite.now)
	suite.Require().NoError(err)
	suite.Require().Len(due, 1)
	suite.Equal(overdue, due[0].ID())

	accepted, err := suite.repository.ListAccepted(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(accepted, 2)
	suite.Equal(overdue, accepted[0].ID())
	suite.Equal(open, accepted[1].ID())
}

func (suite *OrderRepositoryTestSuite) add() *order.Order {
	stored, err := suite.repository.Add(context.Background(), testutil.NewOrder(suite.T(), 7, suite.now))
	suite.Require().NoError(err)
	return stored
}

func (suite *OrderRepositoryTestSuite) get(id int64) *order.Order {
	o, err := suite.repository.Get(context.Background(), id)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryTestSuite) apply(t order.Transition, err error) {
	suite.Require().NoError(err)
	applied, err := suite.repository.Apply(context.Background(), t)
	suite.Require().NoError(err)
	suite.Require().True(applied, "%s on %d was not applied", t.Action, t.OrderID)
}

func (suite *OrderRepositoryTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositorySQLite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}

func TestOrderRepositoryPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, &OrderRepositoryTestSuite{postgres: true})
}
