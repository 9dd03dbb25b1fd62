// Package memory provides an in-process journal and outbox. It is used when no
// database is configured; everything recorded is lost on restart.
package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"marketplace/internal/core/domain/model/journal"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

var ErrNoActiveTransaction = errors.New("no active transaction")

var (
	_ ports.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
	_ ports.UnitOfWork        = (*UnitOfWork)(nil)
)

type state struct {
	mu       sync.RWMutex
	entries  []journal.Entry
	messages []journal.Message
}

// UnitOfWorkFactory hands out units of work over one shared in-memory state.
type UnitOfWorkFactory struct {
	state *state
	now   func() time.Time
}

func NewUnitOfWorkFactory() *UnitOfWorkFactory {
	return &UnitOfWorkFactory{state: &state{}, now: time.Now}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{state: f.state, now: f.now}
}

// UnitOfWork buffers writes between Begin and Commit. Without Begin, writes
// apply immediately. Reads only see committed data.
type UnitOfWork struct {
	state *state
	now   func() time.Time

	active bool
	staged []func(*state)
}

func (u *UnitOfWork) Begin(context.Context) error {
	u.active = true
	return nil
}

func (u *UnitOfWork) Commit(context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}

	u.state.mu.Lock()
	for _, op := range u.staged {
		op(u.state)
	}
	u.state.mu.Unlock()

	u.active, u.staged = false, nil
	return nil
}

func (u *UnitOfWork) Rollback(context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.active, u.staged = false, nil
	return nil
}

func (u *UnitOfWork) JournalRepository() ports.JournalRepository {
	return journalRepository{uow: u}
}

func (u *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxRepository{uow: u}
}

func (u *UnitOfWork) apply(op func(*state)) {
	if u.active {
		u.staged = append(u.staged, op)
		return
	}
	u.state.mu.Lock()
	op(u.state)
	u.state.mu.Unlock()
}

type journalRepository struct {
	uow *UnitOfWork
}

func (r journalRepository) Add(_ context.Context, entry journal.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	r.uow.apply(func(s *state) {
		s.entries = append(s.entries, entry)
	})
	return nil
}

func (r journalRepository) List(_ context.Context, kind journal.Kind, limit int) ([]journal.Entry, error) {
	s := r.uow.state
	s.mu.RLock()
	entries := make([]journal.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if kind == "" || e.Kind() == kind {
			entries = append(entries, e)
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(entries, func(a, b journal.Entry) int {
		return b.OccurredAt().Compare(a.OccurredAt())
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

type outboxRepository struct {
	uow *UnitOfWork
}

func (r outboxRepository) Add(_ context.Context, message journal.Message) error {
	if err := message.ID.Validate(); err != nil {
		return err
	}
	r.uow.apply(func(s *state) {
		s.messages = append(s.messages, message)
	})
	return nil
}

func (r outboxRepository) FetchPending(_ context.Context, limit int) ([]journal.Message, error) {
	s := r.uow.state
	s.mu.RLock()
	pending := make([]journal.Message, 0)
	for _, m := range s.messages {
		if !m.IsSent() {
			pending = append(pending, m)
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(pending, func(a, b journal.Message) int {
		return cmp.Compare(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (r outboxRepository) MarkSent(_ context.Context, id kernel.UUID) error {
	s := r.uow.state
	s.mu.RLock()
	found := slices.ContainsFunc(s.messages, func(m journal.Message) bool { return m.ID.IsEqual(id) })
	s.mu.RUnlock()
	if !found {
		return errs.NewObjectNotFoundError("outbox message", id)
	}

	sentAt := r.uow.now().UTC()
	r.uow.apply(func(s *state) {
		for i := range s.messages {
			if s.messages[i].ID.IsEqual(id) {
				s.messages[i].SentAt = &sentAt
			}
		}
	})
	return nil
}
