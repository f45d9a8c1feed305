package http

import (
	"time"

	"crowddelivery/internal/core/application/usecases/commands"
	"crowddelivery/internal/core/domain/model/order"
)

// CreateOrderRequest is the body of POST /orders. The price is computed by the server.
type CreateOrderRequest struct {
	OrderNumber        string     `json:"orderNumber" validate:"omitempty,max=64"`
	MerchantID         int64      `json:"merchantId" validate:"required,gt=0"`
	CustomerName       string     `json:"customerName" validate:"required"`
	CustomerPhone      string     `json:"customerPhone" validate:"required"`
	DestinationAddress string     `json:"destinationAddress" validate:"required"`
	DestinationLat     float64    `json:"destinationLat" validate:"latitude"`
	DestinationLng     float64    `json:"destinationLng" validate:"longitude"`
	Weight             float64    `json:"weight" validate:"gt=0"`
	Distance           float64    `json:"distance" validate:"gte=0"`
	Type               string     `json:"type" validate:"omitempty,oneof=instant scheduled" enums:"instant,scheduled"`
	ScheduledTime      *time.Time `json:"scheduledTime"`
	Remarks            string     `json:"remarks"`
}

func (r CreateOrderRequest) params() commands.CreateOrderParams {
	return commands.CreateOrderParams{
		Number:             r.OrderNumber,
		MerchantID:         r.MerchantID,
		CustomerName:       r.CustomerName,
		CustomerPhone:      r.CustomerPhone,
		DestinationAddress: r.DestinationAddress,
		Lat:                r.DestinationLat,
		Lng:                r.DestinationLng,
		Weight:             r.Weight,
		Distance:           r.Distance,
		Type:               order.Type(r.Type),
		ScheduledTime:      r.ScheduledTime,
		Remarks:            r.Remarks,
	}
}

// RiderActionRequest is the body of accept, pickup, deliver and transfer.
type RiderActionRequest struct {
	RiderID int64 `json:"riderId" validate:"required,gt=0"`
}

// CancelOrderRequest is the body of POST /orders/:id/cancel.
type CancelOrderRequest struct {
	MerchantID int64 `json:"merchantId" validate:"required,gt=0"`
}

// AcceptOrderResponse answers every accept attempt, won or lost.
type AcceptOrderResponse struct {
	Outcome string          `json:"outcome" enums:"won,lost"`
	Order   *order.Snapshot `json:"order,omitempty"`
}

// SendChatMessageRequest is the body of POST /orders/:id/chats.
type SendChatMessageRequest struct {
	SenderID int64  `json:"senderId" validate:"required,gt=0"`
	Type     string `json:"type" validate:"omitempty,oneof=text voice photo video" enums:"text,voice,photo,video"`
	Message  string `json:"message"`
	URL      string `json:"url" validate:"omitempty,url"`
}

// RelayLocationRequest is the body of POST /riders/location.
type RelayLocationRequest struct {
	UserID int64   `json:"userId" validate:"required,gt=0"`
	Lat    float64 `json:"lat" validate:"latitude"`
	Lng    float64 `json:"lng" validate:"longitude"`
}

// FileReportRequest is the body of POST /reports.
type FileReportRequest struct {
	OrderID  int64    `json:"orderId" validate:"required,gt=0"`
	RiderID  int64    `json:"riderId" validate:"required,gt=0"`
	Type     string   `json:"type" validate:"required"`
	Content  string   `json:"content"`
	PhotoURL string   `json:"photoUrl" validate:"omitempty,url"`
	Lat      *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng      *float64 `json:"lng" validate:"omitempty,longitude"`
}

func (r FileReportRequest) params() commands.FileReportParams {
	return commands.FileReportParams{
		OrderID:  r.OrderID,
		RiderID:  r.RiderID,
		Type:     r.Type,
		Content:  r.Content,
		PhotoURL: r.PhotoURL,
		Lat:      r.Lat,
		Lng:      r.Lng,
	}
}

// ReviewReportRequest is the body of POST /reports/:id/review.
type ReviewReportRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected" enums:"approved,rejected"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
