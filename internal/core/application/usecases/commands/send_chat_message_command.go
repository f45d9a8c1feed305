package commands

import (
	"errors"

	"crowddelivery/internal/core/domain/model/chat"
	"crowddelivery/internal/pkg/guard"
)

var ErrSendChatMessageCommandIsNotConstructed = errors.New(
	"SendChatMessageCommand must be created via NewSendChatMessageCommand constructor",
)

// SendChatMessageCommand posts a message into the conversation of an order.
type SendChatMessageCommand struct {
	orderID  int64
	senderID int64
	kind     chat.Kind
	text     string
	url      string

	guard guard.ConstructorGuard
}

// NewSendChatMessageCommand validates identifiers and the message type. An empty
// kind means text. Content rules are enforced by chat.NewMessage.
func NewSendChatMessageCommand(orderID, senderID int64, kind chat.Kind, text, url string) (SendChatMessageCommand, error) {
	if kind == "" {
		kind = chat.Text
	}
	if err := errors.Join(
		validateID("orderId", orderID),
		validateID("senderId", senderID),
		kind.Validate(),
	); err != nil {
		return SendChatMessageCommand{}, err
	}

	return SendChatMessageCommand{
		orderID:  orderID,
		senderID: senderID,
		kind:     kind,
		text:     text,
		url:      url,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SendChatMessageCommand) Validate() error {
	return c.guard.Validate(ErrSendChatMessageCommandIsNotConstructed)
}

func (c SendChatMessageCommand) OrderID() int64  { return c.orderID }
func (c SendChatMessageCommand) SenderID() int64 { return c.senderID }
func (c SendChatMessageCommand) Kind() chat.Kind { return c.kind }
func (c SendChatMessageCommand) Text() string    { return c.text }
func (c SendChatMessageCommand) URL() string     { return c.url }
