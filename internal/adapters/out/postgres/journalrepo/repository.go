package journalrepo

import (
	"context"

	"marketplace/internal/core/domain/model/journal"

	"gorm.io/gorm"
)

// GormJournalRepository implements ports.JournalRepository using GORM.
type GormJournalRepository struct {
	db *gorm.DB
}

func NewGormJournalRepository(db *gorm.DB) *GormJournalRepository {
	return &GormJournalRepository{db: db}
}

// Add inserts a new entry.
func (r *GormJournalRepository) Add(ctx context.Context, entry journal.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// List returns the newest entries first. An empty kind lists every kind.
func (r *GormJournalRepository) List(ctx context.Context, kind journal.Kind, limit int) ([]journal.Entry, error) {
	q := r.db.WithContext(ctx).Order("occurred_at DESC").Limit(limit)
	if kind != "" {
		q = q.Where("kind = ?", kind.String())
	}

	var dtos []EntryDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]journal.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}
