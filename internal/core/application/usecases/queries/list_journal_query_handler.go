package queries

import (
	"context"

	"marketplace/internal/core/domain/model/journal"
	"marketplace/internal/core/ports"
)

// ListJournalQueryHandler reads the decision journal, newest entries first.
type ListJournalQueryHandler struct {
	repo ports.JournalRepository
}

func NewListJournalQueryHandler(repo ports.JournalRepository) ListJournalQueryHandler {
	return ListJournalQueryHandler{repo: repo}
}

func (h ListJournalQueryHandler) Handle(ctx context.Context, q ListJournalQuery) ([]journal.Entry, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	entries, err := h.repo.List(ctx, q.Kind(), q.Limit())
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make([]journal.Entry, 0)
	}
	return entries, nil
}
