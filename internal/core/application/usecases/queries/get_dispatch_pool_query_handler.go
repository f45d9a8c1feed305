package queries

import (
	"context"

	"crowddelivery/internal/adapters/out/persistence/gormerr"
	"crowddelivery/internal/adapters/out/persistence/orderrepo"
	"crowddelivery/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetDispatchPoolQueryHandler reads the dispatch pool straight from the orders table.
type GetDispatchPoolQueryHandler struct {
	db *gorm.DB
}

// NewGetDispatchPoolQueryHandler creates a handler for dispatch pool queries.
func NewGetDispatchPoolQueryHandler(db *gorm.DB) GetDispatchPoolQueryHandler {
	return GetDispatchPoolQueryHandler{db: db}
}

// Handle returns orders in pending or transferring status, newest first. Orders
// created in the same instant are ordered by descending ID so the listing is stable.
// The result is never nil.
func (h GetDispatchPoolQueryHandler) Handle(ctx context.Context, query GetDispatchPoolQuery) ([]order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var dtos []orderrepo.OrderDTO
	err := h.db.WithContext(ctx).
		Where("status IN ?", []string{string(order.Pending), string(order.Transferring)}).
		Order("created_at DESC, id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, gormerr.Translate("orders", err)
	}

	hall := make([]order.Snapshot, 0, len(dtos))
	for _, dto := range dtos {
		hall = append(hall, dto.Snapshot())
	}
	return hall, nil
}
