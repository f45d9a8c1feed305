package order_test

import (
	"strings"
	"testing"
	"time"

	"crowddelivery/internal/core/domain/model/kernel"
	"crowddelivery/internal/core/domain/model/order"
	"crowddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func validDraft(t *testing.T) order.Draft {
	t.Helper()
	dest, err := kernel.NewLocation(31.2304, 121.4737)
	require.NoError(t, err)

	return order.Draft{
		MerchantID:         10,
		CustomerName:       "Li Lei",
		CustomerPhone:      "13800000000",
		DestinationAddress: "88 Century Avenue",
		Destination:        dest,
		Weight:             2,
		Distance:           3,
		Price:              decimal.RequireFromString("13.00"),
		Type:               order.Instant,
	}
}

func restored(t *testing.T, mutate func(s *order.Snapshot)) *order.Order {
	t.Helper()
	o, err := order.NewOrder(validDraft(t), t0)
	require.NoError(t, err)

	s := o.Snapshot()
	s.ID = 1
	if mutate != nil {
		mutate(&s)
	}
	r, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return r
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with generated number", func(t *testing.T) {
		o, err := order.NewOrder(validDraft(t), t0)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.RiderID())
		assert.Nil(t, o.TransferDeadline())
		assert.Equal(t, int64(10), o.MerchantID())
		assert.True(t, strings.HasPrefix(o.Number(), "ORD20260301-"))
		assert.Equal(t, "13", o.Price().String())
		assert.Equal(t, t0, o.CreatedAt())
	})

	t.Run("should keep supplied number", func(t *testing.T) {
		d := validDraft(t)
		d.Number = "  M-001 "

		o, err := order.NewOrder(d, t0)

		require.NoError(t, err)
		assert.Equal(t, "M-001", o.Number())
	})

	t.Run("should require delivery time for scheduled orders", func(t *testing.T) {
		d := validDraft(t)
		d.Type = order.Scheduled

		_, err := order.NewOrder(d, t0)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		at := t0.Add(2 * time.Hour)
		d.ScheduledTime = &at
		o, err := order.NewOrder(d, t0)
		require.NoError(t, err)
		assert.Equal(t, order.Scheduled, o.Snapshot().Type)
	})

	t.Run("should report every invalid attribute", func(t *testing.T) {
		d := validDraft(t)
		d.MerchantID = 0
		d.CustomerName = " "
		d.Weight = 0
		d.Distance = -1
		d.Type = "express"

		_, err := order.NewOrder(d, t0)

		require.Error(t, err)
		for _, fragment := range []string{"merchantId", "customerName", "weight", "distance", "type is invalid"} {
			assert.Contains(t, err.Error(), fragment)
		}
	})

	t.Run("should fail with unconstructed destination", func(t *testing.T) {
		d := validDraft(t)
		d.Destination = kernel.Location{}

		_, err := order.NewOrder(d, t0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "location must be created")
	})
}

func TestOrder_Validate(t *testing.T) {
	var o *order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}

func TestRestoreOrder_Invariants(t *testing.T) {
	rider := int64(5)
	deadline := t0.Add(3 * time.Minute)

	tests := []struct {
		name    string
		mutate  func(s *order.Snapshot)
		wantErr bool
	}{
		{name: "pending without rider", mutate: func(_ *order.Snapshot) {}},
		{name: "accepted with rider and deadline", mutate: func(s *order.Snapshot) {
			s.Status, s.RiderID, s.TransferDeadline = order.Accepted, &rider, &deadline
		}},
		{name: "picked up with rider", mutate: func(s *order.Snapshot) {
			s.Status, s.RiderID = order.PickedUp, &rider
		}},
		{name: "pending with rider", wantErr: true, mutate: func(s *order.Snapshot) {
			s.RiderID = &rider
		}},
		{name: "accepted without deadline", wantErr: true, mutate: func(s *order.Snapshot) {
			s.Status, s.RiderID = order.Accepted, &rider
		}},
		{name: "delivered without rider", wantErr: true, mutate: func(s *order.Snapshot) {
			s.Status = order.Delivered
		}},
		{name: "transferring with deadline", wantErr: true, mutate: func(s *order.Snapshot) {
			s.Status, s.TransferDeadline = order.Transferring, &deadline
		}},
		{name: "unknown status", wantErr: true, mutate: func(s *order.Snapshot) {
			s.Status = "lost"
		}},
		{name: "missing id", wantErr: true, mutate: func(s *order.Snapshot) {
			s.ID = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := order.NewOrder(validDraft(t), t0)
			require.NoError(t, err)
			s := o.Snapshot()
			s.ID = 1
			tt.mutate(&s)

			_, err = order.RestoreOrder(s)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestOrder_Snapshot_IsACopy(t *testing.T) {
	rider := int64(3)
	deadline := t0.Add(time.Minute)
	o := restored(t, func(s *order.Snapshot) {
		s.Status, s.RiderID, s.TransferDeadline = order.Accepted, &rider, &deadline
	})

	s := o.Snapshot()
	*s.RiderID = 99
	*s.TransferDeadline = t0

	assert.Equal(t, int64(3), *o.RiderID())
	assert.Equal(t, deadline, *o.TransferDeadline())
}

func TestOrder_Apply_FullWorkflow(t *testing.T) {
	o := restored(t, nil)

	accept, err := order.NewAcceptTransition(1, 7, t0, 180*time.Second)
	require.NoError(t, err)
	require.NoError(t, o.Apply(accept))
	assert.Equal(t, order.Accepted, o.Status())
	assert.Equal(t, int64(7), *o.RiderID())
	assert.Equal(t, t0.Add(180*time.Second), *o.TransferDeadline())

	pickUp, _ := order.NewPickUpTransition(1, 7, t0.Add(time.Minute))
	require.NoError(t, o.Apply(pickUp))
	assert.Equal(t, order.PickedUp, o.Status())
	assert.Nil(t, o.TransferDeadline())

	deliver, _ := order.NewDeliverTransition(1, 7, t0.Add(20*time.Minute))
	require.NoError(t, o.Apply(deliver))
	assert.Equal(t, order.Delivered, o.Status())
	assert.Equal(t, int64(7), *o.RiderID())
	require.NotNil(t, o.Snapshot().DeliveredAt)
}

func TestOrder_Apply_ExpiryThenReaccept(t *testing.T) {
	o := restored(t, nil)

	accept, _ := order.NewAcceptTransition(1, 1, t0, 180*time.Second)
	require.NoError(t, o.Apply(accept))

	early, _ := order.NewExpireTransition(1, t0.Add(179*time.Second))
	err := o.Apply(early)
	require.ErrorIs(t, err, errs.ErrTransitionRejected)
	assert.Equal(t, order.Accepted, o.Status())

	expire, _ := order.NewExpireTransition(1, t0.Add(180*time.Second))
	require.NoError(t, o.Apply(expire))
	assert.Equal(t, order.Transferring, o.Status())
	assert.Nil(t, o.RiderID())
	assert.Nil(t, o.TransferDeadline())

	again, _ := order.NewExpireTransition(1, t0.Add(181*time.Second))
	require.ErrorIs(t, o.Apply(again), errs.ErrTransitionRejected, "expiry applies once")

	second, _ := order.NewAcceptTransition(1, 2, t0.Add(181*time.Second), 180*time.Second)
	require.NoError(t, o.Apply(second))
	assert.Equal(t, int64(2), *o.RiderID())
}

func TestOrder_Apply_GuardViolations(t *testing.T) {
	t.Run("wrong rider cannot pick up", func(t *testing.T) {
		o := restored(t, nil)
		accept, _ := order.NewAcceptTransition(1, 1, t0, time.Minute)
		require.NoError(t, o.Apply(accept))

		pickUp, _ := order.NewPickUpTransition(1, 2, t0)
		err := o.Apply(pickUp)

		require.ErrorIs(t, err, errs.ErrTransitionRejected)
		assert.Contains(t, err.Error(), "not held by rider 2")
		assert.Equal(t, order.Accepted, o.Status())
		assert.Equal(t, int64(1), *o.RiderID())
	})

	t.Run("pick up after the deadline is rejected", func(t *testing.T) {
		o := restored(t, nil)
		accept, _ := order.NewAcceptTransition(1, 1, t0, time.Minute)
		require.NoError(t, o.Apply(accept))

		late, _ := order.NewPickUpTransition(1, 1, t0.Add(time.Minute))
		require.ErrorIs(t, o.Apply(late), errs.ErrTransitionRejected)
	})

	t.Run("second accept loses", func(t *testing.T) {
		o := restored(t, nil)
		first, _ := order.NewAcceptTransition(1, 1, t0, time.Minute)
		second, _ := order.NewAcceptTransition(1, 2, t0, time.Minute)

		require.NoError(t, o.Apply(first))
		require.ErrorIs(t, o.Apply(second), errs.ErrTransitionRejected)
		assert.Equal(t, int64(1), *o.RiderID())
	})

	t.Run("other merchant cannot cancel", func(t *testing.T) {
		o := restored(t, nil)
		cancel, _ := order.NewCancelTransition(1, 11)

		require.ErrorIs(t, o.Apply(cancel), errs.ErrTransitionRejected)
	})

	t.Run("transition for another order", func(t *testing.T) {
		o := restored(t, nil)
		cancel, _ := order.NewCancelTransition(2, 10)

		require.ErrorIs(t, o.Apply(cancel), errs.ErrValueIsInvalid)
	})
}

func TestOrder_Apply_TransferReturnsToPool(t *testing.T) {
	o := restored(t, nil)
	accept, _ := order.NewAcceptTransition(1, 4, t0, time.Minute)
	require.NoError(t, o.Apply(accept))

	transfer, _ := order.NewTransferTransition(1, 4)
	require.NoError(t, o.Apply(transfer))

	assert.Equal(t, order.Transferring, o.Status())
	assert.True(t, o.Status().IsDispatchable())
	assert.Nil(t, o.RiderID())

	cancel, _ := order.NewCancelTransition(1, 10)
	require.NoError(t, o.Apply(cancel))
	assert.Equal(t, order.Cancelled, o.Status())
}
