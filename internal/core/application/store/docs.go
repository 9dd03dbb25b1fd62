// Package store holds the authoritative in-process collections and the query
// parameters currently applied to them.
//
// A Store runs in one of two modes:
//
//   - client-held: the whole collection is fetched once; search, filter, sort
//     and pagination run locally.
//   - server-paged: one page is fetched per (page index, page size, sort) request;
//     search and filter run locally over the fetched page.
//
// Fetches are issued without holding the store lock. Each fetch takes a token
// from a monotonically increasing counter, and a response is committed only if
// its token is still the latest issued, so the last request always wins.
// Controllers write to the collection only through Update.
package store
