package ws

import (
	"encoding/json"

	"crowddelivery/internal/core/domain/model/order"
)

// Client events.
const (
	EventJoin           = "join"
	EventChatJoin       = "chat:join"
	EventChatLeave      = "chat:leave"
	EventOrderAccept    = "order:accept"
	EventLocationUpdate = "location:update"
	EventChatSend       = "chat:send"
)

// Direct replies.
const (
	EventAcceptResult = "order:accept:result"
	EventError        = "error"
)

// Frame is the envelope of every websocket message in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type reply struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type joinData struct {
	UserID int64 `json:"userId"`
}

type chatRoomData struct {
	OrderID int64 `json:"orderId"`
}

type acceptData struct {
	OrderID int64 `json:"orderId"`
	RiderID int64 `json:"riderId"`
}

// AcceptResult is the data of order:accept:result.
type AcceptResult struct {
	OrderID int64           `json:"orderId"`
	Outcome string          `json:"outcome"`
	Order   *order.Snapshot `json:"order,omitempty"`
}

type locationData struct {
	UserID int64   `json:"userId"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

type chatSendData struct {
	OrderID  int64  `json:"orderId"`
	SenderID int64  `json:"senderId"`
	Type     string `json:"type"`
	Message  string `json:"message"`
	URL      string `json:"url"`
}
