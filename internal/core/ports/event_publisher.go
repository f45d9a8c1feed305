package ports

import (
	"context"
	"strconv"
)

// Real-time event names.
const (
	EventOrderNew      = "order:new"
	EventOrderUpdated  = "order:updated"
	EventLocationRider = "location:rider"
	EventChatMessage   = "chat:message"
	EventReportNew     = "report:new"
	EventReportUpdated = "report:updated"
)

// BroadcastChannel reaches every connected subscriber.
const BroadcastChannel = "broadcast"

// UserChannel addresses every connection of one user.
func UserChannel(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

// OrderChannel addresses the participants of one order's conversation.
func OrderChannel(orderID int64) string {
	return "order:" + strconv.FormatInt(orderID, 10)
}

// EventPublisher delivers an event to the current subscribers of a channel.
//
// Publish must not block on subscribers and keeps no history: only subscribers
// present at publication time receive the event. Events published by one caller
// on one channel reach each subscriber in publication order.
type EventPublisher interface {
	Publish(ctx context.Context, channel, event string, payload any) error
}
