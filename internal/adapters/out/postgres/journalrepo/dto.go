// Package journalrepo persists decision journal entries.
package journalrepo

import (
	"time"

	"marketplace/internal/core/domain/model/journal"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO is the row of one journal entry.
type EntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind       string    `gorm:"size:64;index"`
	EntityID   int64     `gorm:"index"`
	FromStatus string    `gorm:"size:32"`
	ToStatus   string    `gorm:"size:32"`
	Reason     string
	OccurredAt time.Time `gorm:"index"`
}

func (EntryDTO) TableName() string {
	return "journal_entries"
}

func fromDomain(e journal.Entry) EntryDTO {
	return EntryDTO{
		ID:         e.ID().Bytes(),
		Kind:       e.Kind().String(),
		EntityID:   e.EntityID().Int64(),
		FromStatus: e.From(),
		ToStatus:   e.To(),
		Reason:     e.Reason(),
		OccurredAt: e.OccurredAt(),
	}
}

func toDomain(dto EntryDTO) (journal.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return journal.Entry{}, err
	}

	return journal.RestoreEntry(
		id,
		journal.Kind(dto.Kind),
		kernel.ID(dto.EntityID),
		dto.FromStatus,
		dto.ToStatus,
		dto.Reason,
		dto.OccurredAt,
	)
}
