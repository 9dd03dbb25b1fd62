package postgres

import (
	"marketplace/internal/adapters/out/postgres/journalrepo"
	"marketplace/internal/adapters/out/postgres/outboxrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the journal and outbox tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&journalrepo.EntryDTO{}, &outboxrepo.MessageDTO{})
}
