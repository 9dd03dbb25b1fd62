package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListJournal handles GET /api/v1/journal - recent decisions, newest first.
func (s *Server) ListJournal(ctx echo.Context) error {
	var (
		kind  *string
		limit *int
	)
	if err := errors.Join(
		bindQuery(ctx, "kind", &kind),
		bindQuery(ctx, "limit", &limit),
	); err != nil {
		return err
	}

	q, err := queries.NewListJournalQuery(deref(kind), deref(limit))
	if err != nil {
		return err
	}

	entries, err := s.listJournalHandler.Handle(ctx.Request().Context(), q)
	if err != nil {
		return err
	}

	response := make([]JournalEntry, len(entries))
	for i, entry := range entries {
		response[i] = toJournalEntry(entry)
	}

	return ctx.JSON(http.StatusOK, response)
}
