package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"crowddelivery/internal/core/application/usecases/commands"
	"crowddelivery/internal/core/domain/model/order"
	"crowddelivery/internal/core/ports"
	"crowddelivery/internal/pkg/errs"
	"crowddelivery/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const heldOrderID = int64(7)

// acceptedOrder returns order 7 held by rider 101 with an open accept window.
func acceptedOrder(t *testing.T, now time.Time) *order.Order {
	t.Helper()

	s := testutil.NewOrder(t, 3, now.Add(-time.Minute)).Snapshot()
	rider := int64(101)
	deadline := now.Add(acceptWindow)
	s.ID = heldOrderID
	s.Status = order.Accepted
	s.RiderID = &rider
	s.AcceptedAt = &now
	s.TransferDeadline = &deadline

	o, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return o
}

func unavailable() error {
	return errs.NewUnavailableError("order", errors.New("connection reset"))
}

func pickUpWith(t *testing.T, repo *MockOrderRepository, publisher *recordingPublisher, now time.Time, riderID int64) (*order.Order, error) {
	t.Helper()

	cmd, err := commands.NewPickUpOrderCommand(heldOrderID, riderID)
	require.NoError(t, err)
	handler := commands.NewPickUpOrderCommandHandler(commands.DispatchDeps{
		Orders:    repo,
		Publisher: publisher,
		Scheduler: newRecordingScheduler(),
		Clock:     func() time.Time { return now },
	})
	return handler.Handle(context.Background(), cmd)
}

func TestPickUp_ReloadFailure_ReturnsProjectedOrderAndPublishes(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	repo := &MockOrderRepository{}
	publisher := &recordingPublisher{}

	repo.On("Get", ctx, heldOrderID).Return(acceptedOrder(t, now), nil).Once()
	repo.On("Apply", ctx, mock.AnythingOfType("order.Transition")).Return(true, nil).Once()
	repo.On("Get", ctx, heldOrderID).Return(nil, unavailable()).Once()

	picked, err := pickUpWith(t, repo, publisher, now, 101)

	require.NoError(t, err, "the transition committed")
	require.NotNil(t, picked)
	assert.Equal(t, order.PickedUp, picked.Status())
	assert.Equal(t, int64(101), *picked.RiderID())
	assert.Nil(t, picked.TransferDeadline())
	require.NotNil(t, picked.Snapshot().PickedUpAt)
	assert.Equal(t, now, *picked.Snapshot().PickedUpAt)

	assert.ElementsMatch(t,
		[]string{ports.BroadcastChannel, ports.UserChannel(3), ports.UserChannel(101)},
		publisher.Channels(ports.EventOrderUpdated))
	repo.AssertExpectations(t)
}

func TestPickUp_StoreFailureWhileExplainingRejection_IsUnavailable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	repo := &MockOrderRepository{}
	publisher := &recordingPublisher{}

	repo.On("Get", ctx, heldOrderID).Return(acceptedOrder(t, now), nil).Once()
	repo.On("Apply", ctx, mock.AnythingOfType("order.Transition")).Return(false, nil).Once()
	repo.On("Exists", ctx, heldOrderID).Return(true, nil).Once()
	repo.On("Get", ctx, heldOrderID).Return(nil, unavailable()).Once()

	picked, err := pickUpWith(t, repo, publisher, now, 202)

	assert.Nil(t, picked)
	require.ErrorIs(t, err, errs.ErrUnavailable)
	assert.NotErrorIs(t, err, errs.ErrTransitionRejected)
	assert.Empty(t, publisher.Events())
	repo.AssertExpectations(t)
}

func TestPickUp_PreImageReadFailure_DoesNotWrite(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	repo := &MockOrderRepository{}
	publisher := &recordingPublisher{}

	repo.On("Get", ctx, heldOrderID).Return(nil, unavailable()).Once()

	_, err := pickUpWith(t, repo, publisher, now, 101)

	require.ErrorIs(t, err, errs.ErrUnavailable)
	repo.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
	assert.Empty(t, publisher.Events())
}
