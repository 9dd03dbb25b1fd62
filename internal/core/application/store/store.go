package store

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"marketplace/internal/core/domain/query"
	"marketplace/internal/pkg/errs"
)

// Mode tells how a Store obtains its collection.
type Mode int

const (
	ClientHeld Mode = iota
	ServerPaged
)

func (m Mode) String() string {
	if m == ServerPaged {
		return "server-paged"
	}
	return "client-held"
}

// FetchAllFunc loads a whole collection.
type FetchAllFunc[T any] func(ctx context.Context) ([]T, error)

// FetchPageFunc loads one page of a collection, sorted upstream.
type FetchPageFunc[T any] func(ctx context.Context, req query.PageRequest, sort query.SortDescriptor) (query.Page[T], error)

// Params are the query parameters active on a Store. Exactly one set is active at a time.
type Params struct {
	Search string
	Filter query.FilterDescriptor
	Sort   query.SortDescriptor
	Page   query.PageRequest
}

// Store owns one entity collection and its active Params.
type Store[T any] struct {
	mode        Mode
	name        string
	schema      *query.Schema[T]
	fetchAll    FetchAllFunc[T]
	fetchPage   FetchPageFunc[T]
	maxPageSize int
	logger      *slog.Logger

	mu        sync.Mutex
	items     []T
	params    Params
	committed query.PageDescriptor
	loaded    bool
	latest    uint64
}

// NewClientHeld creates a Store that fetches the whole collection and derives every view locally.
func NewClientHeld[T any](schema *query.Schema[T], fetch FetchAllFunc[T], opts ...Option) *Store[T] {
	s := newStore(ClientHeld, schema, opts)
	s.fetchAll = fetch
	return s
}

// NewServerPaged creates a Store that fetches one upstream page per page request.
func NewServerPaged[T any](schema *query.Schema[T], fetch FetchPageFunc[T], opts ...Option) *Store[T] {
	s := newStore(ServerPaged, schema, opts)
	s.fetchPage = fetch
	return s
}

func newStore[T any](mode Mode, schema *query.Schema[T], opts []Option) *Store[T] {
	o := buildOptions(opts)
	return &Store[T]{
		mode:        mode,
		name:        o.name,
		schema:      schema,
		maxPageSize: o.maxPageSize,
		logger:      o.logger.With("component", "store", "collection", o.name, "mode", mode.String()),
		params:      Params{Page: query.PageRequest{Index: 0, Size: o.pageSize}},
	}
}

// Mode returns the store mode.
func (s *Store[T]) Mode() Mode {
	return s.mode
}

// Load fetches the collection (client-held) or the current page (server-paged).
func (s *Store[T]) Load(ctx context.Context) error {
	return s.fetch(ctx)
}

// Refresh refetches with the active parameters. It is Load under another name,
// used by scheduled jobs.
func (s *Store[T]) Refresh(ctx context.Context) error {
	return s.fetch(ctx)
}

// Params returns the active parameters.
func (s *Store[T]) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Loaded reports whether a fetch has been committed at least once.
func (s *Store[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Apply makes next the active parameters.
//
// A change of search term or filter resets the page index to 0, whatever index
// next carries. In server-paged mode exactly one fetch is issued when the page
// request or the sort changes, or when nothing was loaded yet. In client-held
// mode a fetch happens only if nothing was loaded yet.
//
// When that fetch fails the previous parameters are restored, so Params and
// View keep describing the same page.
func (s *Store[T]) Apply(ctx context.Context, next Params) error {
	next.Search = strings.TrimSpace(next.Search)
	if err := errors.Join(
		s.schema.ValidateFilter(next.Filter),
		s.schema.ValidateSort(next.Sort),
		next.Page.Validate(s.maxPageSize),
	); err != nil {
		return err
	}

	s.mu.Lock()
	current := s.params
	if next.Search != current.Search || !next.Filter.Equal(current.Filter) {
		next.Page.Index = 0
	}
	requestChanged := next.Page != current.Page || next.Sort != current.Sort
	s.params = next
	needFetch := !s.loaded || (s.mode == ServerPaged && requestChanged)
	s.mu.Unlock()

	if !needFetch {
		return nil
	}
	if err := s.fetch(ctx); err != nil {
		s.mu.Lock()
		s.params = current
		s.mu.Unlock()
		return err
	}
	return nil
}

// SetSearch changes the search term; a different term resets the page index to 0.
func (s *Store[T]) SetSearch(ctx context.Context, term string) error {
	p := s.Params()
	p.Search = term
	return s.Apply(ctx, p)
}

// SetFilter changes the filter; a different filter resets the page index to 0.
func (s *Store[T]) SetFilter(ctx context.Context, filter query.FilterDescriptor) error {
	p := s.Params()
	p.Filter = filter
	return s.Apply(ctx, p)
}

// SetSort changes the sort. Server-paged stores refetch.
func (s *Store[T]) SetSort(ctx context.Context, sort query.SortDescriptor) error {
	p := s.Params()
	p.Sort = sort
	return s.Apply(ctx, p)
}

// SetPage changes the page index. Server-paged stores refetch.
func (s *Store[T]) SetPage(ctx context.Context, index int) error {
	p := s.Params()
	p.Page.Index = index
	return s.Apply(ctx, p)
}

// SetPageSize changes the page size and goes back to the first page.
func (s *Store[T]) SetPageSize(ctx context.Context, size int) error {
	p := s.Params()
	p.Page = query.PageRequest{Index: 0, Size: size}
	return s.Apply(ctx, p)
}

// View derives the displayed page from the collection and the active parameters.
//
// In client-held mode the page descriptor is computed from the derived view.
// In server-paged mode it is the one returned upstream, and the items keep the
// upstream order.
func (s *Store[T]) View() (query.Page[T], error) {
	s.mu.Lock()
	items, params, committed := s.items, s.params, s.committed
	s.mu.Unlock()

	if s.mode == ServerPaged {
		view, err := query.DeriveView(items, s.schema, params.Search, params.Filter, query.SortDescriptor{})
		if err != nil {
			return query.Page[T]{}, err
		}
		return query.Page[T]{Items: view, Page: committed}, nil
	}

	view, err := query.DeriveView(items, s.schema, params.Search, params.Filter, params.Sort)
	if err != nil {
		return query.Page[T]{}, err
	}
	return query.Paginate(view, params.Page), nil
}

// Items returns a copy of the raw collection.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Find returns the first item satisfying match.
func (s *Store[T]) Find(match func(T) bool) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Update replaces the collection with fn applied to a copy of it.
// fn runs under the store lock and must not block.
func (s *Store[T]) Update(fn func(items []T) []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = fn(slices.Clone(s.items))
}

// Replace swaps the first item satisfying match for replacement and reports whether
// one was found.
func (s *Store[T]) Replace(match func(T) bool, replacement T) bool {
	found := false
	s.Update(func(items []T) []T {
		if i := slices.IndexFunc(items, match); i >= 0 {
			items[i] = replacement
			found = true
		}
		return items
	})
	return found
}

func (s *Store[T]) fetch(ctx context.Context) error {
	s.mu.Lock()
	s.latest++
	token := s.latest
	params := s.params
	s.mu.Unlock()

	var (
		items []T
		page  query.PageDescriptor
		err   error
	)
	switch s.mode {
	case ClientHeld:
		items, err = s.fetchAll(ctx)
	case ServerPaged:
		var fetched query.Page[T]
		fetched, err = s.fetchPage(ctx, params.Page, params.Sort)
		items, page = fetched.Items, fetched.Page
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.latest {
		s.logger.DebugContext(ctx, errs.ErrStaleResponseDiscarded.Error(),
			"token", token,
			"latest", s.latest,
			"page", params.Page.Index,
			"failed", err != nil,
		)
		return nil
	}
	if err != nil {
		s.logger.WarnContext(ctx, "fetch failed", "page", params.Page.Index, "error", err)
		if errors.Is(err, errs.ErrFetchFailed) {
			return err
		}
		return errs.NewFetchFailedError(s.name, err)
	}

	s.items = items
	s.committed = page
	s.loaded = true
	s.logger.DebugContext(ctx, "fetch committed", "token", token, "items", len(items), "page", page.Index)
	return nil
}
