package queries

import (
	"context"

	"crowddelivery/internal/adapters/out/persistence/chatrepo"
	"crowddelivery/internal/adapters/out/persistence/gormerr"
	"crowddelivery/internal/core/domain/model/chat"
	"crowddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetChatHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetChatHistoryQueryHandler(db *gorm.DB) GetChatHistoryQueryHandler {
	return GetChatHistoryQueryHandler{db: db}
}

// Handle returns the messages of the order by ascending ID, which is the order in
// which they were relayed. An unknown order yields ObjectNotFoundError; an order
// without messages yields an empty slice.
func (h GetChatHistoryQueryHandler) Handle(ctx context.Context, query GetChatHistoryQuery) ([]chat.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var orders int64
	if err := db.Table("orders").Where("id = ?", query.OrderID()).Count(&orders).Error; err != nil {
		return nil, gormerr.Translate("orders", err)
	}
	if orders == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	var dtos []chatrepo.MessageDTO
	if err := db.Where("order_id = ?", query.OrderID()).Order("id ASC").Find(&dtos).Error; err != nil {
		return nil, gormerr.Translate("chat_messages", err)
	}

	history := make([]chat.Snapshot, 0, len(dtos))
	for _, dto := range dtos {
		history = append(history, dto.Snapshot())
	}
	return history, nil
}
