// Package outboxrepo persists outbox messages waiting to be published.
package outboxrepo

import (
	"time"

	"marketplace/internal/core/domain/model/journal"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// MessageDTO is the row of one outbox message. SentAt is NULL until published.
type MessageDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventID   uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	Kind      string     `gorm:"size:64"`
	Key       string     `gorm:"size:64"`
	Payload   []byte     `gorm:"type:jsonb"`
	CreatedAt time.Time  `gorm:"index"`
	SentAt    *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m journal.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID.Bytes(),
		EventID:   m.EventID.Bytes(),
		Kind:      m.Kind.String(),
		Key:       m.Key,
		Payload:   m.Payload,
		CreatedAt: m.CreatedAt,
		SentAt:    m.SentAt,
	}
}

func toDomain(dto MessageDTO) (journal.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return journal.Message{}, err
	}
	eventID, err := kernel.UUIDFromBytes(dto.EventID[:])
	if err != nil {
		return journal.Message{}, err
	}
	kind, err := journal.ParseKind(dto.Kind)
	if err != nil {
		return journal.Message{}, err
	}

	return journal.Message{
		ID:        id,
		EventID:   eventID,
		Kind:      kind,
		Key:       dto.Key,
		Payload:   dto.Payload,
		CreatedAt: dto.CreatedAt,
		SentAt:    dto.SentAt,
	}, nil
}
