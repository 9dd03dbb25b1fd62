// Package kernel provides core domain primitives shared by the order and
// product models of the marketplace service.
//
// The package includes:
//   - ID: A positive numeric identifier as issued by the marketplace API
//   - Money: A non-negative decimal amount used for prices and totals
//   - UUID: An identifier for records created by this service (journal, outbox)
//
// These primitives are immutable values that validate themselves on
// construction, so domain objects built from them are always in a valid state.
package kernel
