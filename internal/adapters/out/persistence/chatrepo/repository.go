package chatrepo

import (
	"context"

	"crowddelivery/internal/adapters/out/persistence/gormerr"
	"crowddelivery/internal/core/domain/model/chat"

	"gorm.io/gorm"
)

// GormChatRepository implements ports.ChatRepository using GORM.
type GormChatRepository struct {
	db *gorm.DB
}

func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

// Add inserts the message and returns the stored copy with its ID.
func (r *GormChatRepository) Add(ctx context.Context, message *chat.Message) (*chat.Message, error) {
	if err := message.Validate(); err != nil {
		return nil, err
	}

	dto := FromSnapshot(message.Snapshot())
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, gormerr.Translate("chat_messages", err)
	}

	return chat.RestoreMessage(dto.Snapshot())
}
