package commands_test

import (
	"errors"
	"testing"
	"time"

	"crowddelivery/internal/core/application/usecases/commands"
	"crowddelivery/internal/core/ports"
	"crowddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRelayLocationCommand_RejectsInvalidPoint(t *testing.T) {
	_, err := commands.NewRelayLocationCommand(3, 95, 10)
	require.Error(t, err)

	_, err = commands.NewRelayLocationCommand(0, 10, 10)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRelayLocationCommandHandler_StoresThenBroadcasts(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC)
	want := ports.Position{UserID: 3, Lat: 31.2, Lng: 121.5, RecordedAt: now}

	cache := new(MockLocationCache)
	cache.On("Put", ctx, want).Return(nil).Once()
	publisher := &recordingPublisher{}

	cmd, err := commands.NewRelayLocationCommand(3, 31.2, 121.5)
	require.NoError(t, err)

	got, err := commands.NewRelayLocationCommandHandler(cache, publisher, nil, func() time.Time { return now }).Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, ports.BroadcastChannel, events[0].Channel)
	assert.Equal(t, ports.EventLocationRider, events[0].Event)
	assert.Equal(t, want, events[0].Payload)
	cache.AssertExpectations(t)
}

func TestRelayLocationCommandHandler_CacheFailureIsNotPublished(t *testing.T) {
	ctx := t.Context()
	cache := new(MockLocationCache)
	cache.On("Put", ctx, mock.Anything).Return(errs.NewUnavailableError("location cache", errors.New("connection refused"))).Once()
	publisher := &recordingPublisher{}

	cmd, err := commands.NewRelayLocationCommand(3, 31.2, 121.5)
	require.NoError(t, err)

	_, err = commands.NewRelayLocationCommandHandler(cache, publisher, nil, nil).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnavailable)
	assert.Empty(t, publisher.Events())
}
