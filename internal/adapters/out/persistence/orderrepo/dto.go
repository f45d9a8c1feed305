// Package orderrepo persists the order aggregate with gorm and executes order
// transitions as conditional updates, which makes the database the single
// arbiter of concurrent dispatch decisions.
package orderrepo

import (
	"time"

	"crowddelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The composite index on (status, transfer_deadline) serves the dispatch pool
// listing and the accept-window sweep.
type OrderDTO struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement"`
	OrderNumber        string          `gorm:"size:64;uniqueIndex;not null"`
	MerchantID         int64           `gorm:"index;not null"`
	RiderID            *int64          `gorm:"index"`
	CustomerName       string          `gorm:"size:128"`
	CustomerPhone      string          `gorm:"size:32"`
	DestinationAddress string          `gorm:"type:text"`
	Destination        LocationDTO     `gorm:"embedded;embeddedPrefix:destination_"`
	Weight             float64         `gorm:"not null"`
	Distance           float64         `gorm:"not null"`
	Price              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status             string          `gorm:"size:16;not null;index:idx_orders_status_deadline,priority:1"`
	Type               string          `gorm:"size:16;not null"`
	ScheduledTime      *time.Time
	Remarks            string    `gorm:"type:text"`
	CreatedAt          time.Time `gorm:"not null;index"`
	AcceptedAt         *time.Time
	PickedUpAt         *time.Time
	DeliveredAt        *time.Time
	TransferDeadline   *time.Time `gorm:"index:idx_orders_status_deadline,priority:2"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO represents the embedded destination coordinates within the order table.
type LocationDTO struct {
	Lat float64 `gorm:"not null"`
	Lng float64 `gorm:"not null"`
}

// FromSnapshot converts an order snapshot to its database representation.
func FromSnapshot(s order.Snapshot) OrderDTO {
	return OrderDTO{
		ID:                 s.ID,
		OrderNumber:        s.OrderNumber,
		MerchantID:         s.MerchantID,
		RiderID:            s.RiderID,
		CustomerName:       s.CustomerName,
		CustomerPhone:      s.CustomerPhone,
		DestinationAddress: s.DestinationAddress,
		Destination:        LocationDTO{Lat: s.DestinationLat, Lng: s.DestinationLng},
		Weight:             s.Weight,
		Distance:           s.Distance,
		Price:              s.Price,
		Status:             s.Status.String(),
		Type:               s.Type.String(),
		ScheduledTime:      s.ScheduledTime,
		Remarks:            s.Remarks,
		CreatedAt:          s.CreatedAt,
		AcceptedAt:         s.AcceptedAt,
		PickedUpAt:         s.PickedUpAt,
		DeliveredAt:        s.DeliveredAt,
		TransferDeadline:   s.TransferDeadline,
	}
}

// Snapshot converts the row back to the flat order form without checking invariants.
// Queries use it directly; the repository goes through toDomain.
func (dto OrderDTO) Snapshot() order.Snapshot {
	return order.Snapshot{
		ID:                 dto.ID,
		OrderNumber:        dto.OrderNumber,
		MerchantID:         dto.MerchantID,
		RiderID:            dto.RiderID,
		CustomerName:       dto.CustomerName,
		CustomerPhone:      dto.CustomerPhone,
		DestinationAddress: dto.DestinationAddress,
		DestinationLat:     dto.Destination.Lat,
		DestinationLng:     dto.Destination.Lng,
		Weight:             dto.Weight,
		Distance:           dto.Distance,
		Price:              dto.Price,
		Status:             order.Status(dto.Status),
		Type:               order.Type(dto.Type),
		ScheduledTime:      utc(dto.ScheduledTime),
		Remarks:            dto.Remarks,
		CreatedAt:          dto.CreatedAt.UTC(),
		AcceptedAt:         utc(dto.AcceptedAt),
		PickedUpAt:         utc(dto.PickedUpAt),
		DeliveredAt:        utc(dto.DeliveredAt),
		TransferDeadline:   utc(dto.TransferDeadline),
	}
}

// toDomain converts a database DTO to an order aggregate, checking every invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	return order.RestoreOrder(dto.Snapshot())
}

// columns renders a transition effect as the column assignments of one UPDATE.
func columns(e order.Effect) map[string]any {
	set := map[string]any{"status": e.Status.String()}

	switch {
	case e.ClearRider:
		set["rider_id"] = nil
	case e.RiderID != nil:
		set["rider_id"] = *e.RiderID
	}

	switch {
	case e.ClearDeadline:
		set["transfer_deadline"] = nil
	case e.TransferDeadline != nil:
		set["transfer_deadline"] = e.TransferDeadline.UTC()
	}

	if e.AcceptedAt != nil {
		set["accepted_at"] = e.AcceptedAt.UTC()
	}
	if e.PickedUpAt != nil {
		set["picked_up_at"] = e.PickedUpAt.UTC()
	}
	if e.DeliveredAt != nil {
		set["delivered_at"] = e.DeliveredAt.UTC()
	}

	return set
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
