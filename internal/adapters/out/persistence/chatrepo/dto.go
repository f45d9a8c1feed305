// Package chatrepo stores order chat messages. Rows are inserted once and never updated.
package chatrepo

import (
	"time"

	"crowddelivery/internal/core/domain/model/chat"
)

// MessageDTO is the database row of a chat message. The autoincrement primary key
// gives messages of one order a total order.
type MessageDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   int64     `gorm:"not null;index"`
	SenderID  int64     `gorm:"not null"`
	Kind      string    `gorm:"column:type;size:8;not null"`
	Message   string    `gorm:"type:text"`
	URL       string    `gorm:"size:512"`
	CreatedAt time.Time `gorm:"not null"`
}

func (MessageDTO) TableName() string {
	return "chat_messages"
}

func FromSnapshot(s chat.Snapshot) MessageDTO {
	return MessageDTO{
		ID:        s.ID,
		OrderID:   s.OrderID,
		SenderID:  s.SenderID,
		Kind:      string(s.Kind),
		Message:   s.Message,
		URL:       s.URL,
		CreatedAt: s.CreatedAt,
	}
}

func (dto MessageDTO) Snapshot() chat.Snapshot {
	return chat.Snapshot{
		ID:        dto.ID,
		OrderID:   dto.OrderID,
		SenderID:  dto.SenderID,
		Kind:      chat.Kind(dto.Kind),
		Message:   dto.Message,
		URL:       dto.URL,
		CreatedAt: dto.CreatedAt.UTC(),
	}
}
