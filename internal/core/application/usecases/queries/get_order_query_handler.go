package queries

import (
	"context"
	"errors"

	"crowddelivery/internal/adapters/out/persistence/gormerr"
	"crowddelivery/internal/adapters/out/persistence/orderrepo"
	"crowddelivery/internal/core/domain/model/order"
	"crowddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the committed order or ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	var dto orderrepo.OrderDTO
	if err := h.db.WithContext(ctx).First(&dto, "id = ?", query.OrderID()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order.Snapshot{}, errs.NewObjectNotFoundError("order", query.OrderID())
		}
		return order.Snapshot{}, gormerr.Translate("orders", err)
	}
	return dto.Snapshot(), nil
}
