package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"crowddelivery/internal/adapters/out/persistence/chatrepo"
	"crowddelivery/internal/adapters/out/persistence/orderrepo"
	"crowddelivery/internal/core/application/usecases/commands"
	"crowddelivery/internal/core/domain/model/chat"
	"crowddelivery/internal/core/ports"
	"crowddelivery/internal/pkg/errs"
	"crowddelivery/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSendChatMessageCommand(t *testing.T) {
	cmd, err := commands.NewSendChatMessageCommand(1, 2, "", "hello", "")
	require.NoError(t, err)
	assert.Equal(t, chat.Text, cmd.Kind())

	_, err = commands.NewSendChatMessageCommand(1, 2, "sticker", "hello", "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewSendChatMessageCommand(0, 2, chat.Text, "hello", "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestSendChatMessageCommandHandler_PersistsThenPublishesInIDOrder(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	orders := orderrepo.NewGormOrderRepository(db)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	o, err := orders.Add(ctx, testutil.NewOrder(t, 7, now))
	require.NoError(t, err)

	publisher := &recordingPublisher{}
	h := commands.NewSendChatMessageCommandHandler(orders, chatrepo.NewGormChatRepository(db), publisher, nil, func() time.Time { return now })

	const senders = 10
	var wg sync.WaitGroup
	for i := range senders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewSendChatMessageCommand(o.ID(), int64(100+i), chat.Text, "on my way", "")
			if err != nil {
				return
			}
			_, _ = h.Handle(ctx, cmd)
		}()
	}
	wg.Wait()

	events := publisher.Events()
	require.Len(t, events, senders)
	var last int64
	for _, e := range events {
		assert.Equal(t, ports.OrderChannel(o.ID()), e.Channel)
		assert.Equal(t, ports.EventChatMessage, e.Event)
		s := e.Payload.(chat.Snapshot)
		assert.Greater(t, s.ID, last)
		last = s.ID
	}
}

func TestSendChatMessageCommandHandler_UnknownOrder(t *testing.T) {
	ctx := t.Context()
	orders := new(MockOrderRepository)
	orders.On("Exists", ctx, int64(9)).Return(false, nil).Once()
	messages := new(MockChatRepository)
	publisher := &recordingPublisher{}

	cmd, err := commands.NewSendChatMessageCommand(9, 2, chat.Text, "hello", "")
	require.NoError(t, err)

	_, err = commands.NewSendChatMessageCommandHandler(orders, messages, publisher, nil, nil).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	messages.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	assert.Empty(t, publisher.Events())
}

func TestSendChatMessageCommandHandler_MediaWithoutURL(t *testing.T) {
	ctx := t.Context()
	orders := new(MockOrderRepository)
	orders.On("Exists", ctx, int64(9)).Return(true, nil).Once()
	messages := new(MockChatRepository)

	cmd, err := commands.NewSendChatMessageCommand(9, 2, chat.Photo, "", "")
	require.NoError(t, err)

	_, err = commands.NewSendChatMessageCommandHandler(orders, messages, &recordingPublisher{}, nil, nil).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	messages.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestSendChatMessageCommandHandler_StoreFailure(t *testing.T) {
	ctx := t.Context()
	orders := new(MockOrderRepository)
	orders.On("Exists", ctx, int64(9)).Return(true, nil).Once()
	messages := new(MockChatRepository)
	messages.On("Add", ctx, mock.AnythingOfType("*chat.Message")).
		Return(nil, errs.NewUnavailableError("chat_messages", errors.New("disk full"))).Once()
	publisher := &recordingPublisher{}

	cmd, err := commands.NewSendChatMessageCommand(9, 2, chat.Text, "hello", "")
	require.NoError(t, err)

	_, err = commands.NewSendChatMessageCommandHandler(orders, messages, publisher, nil, nil).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnavailable)
	assert.Empty(t, publisher.Events())
}
