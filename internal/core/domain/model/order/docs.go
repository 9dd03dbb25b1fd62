// Package order provides the Order aggregate of the marketplace service and
// the transition table that guards its lifecycle.
//
// The package includes:
//   - Order: An immutable snapshot of a customer order as returned by the marketplace API
//   - Item: A line item with a quantity and a price captured at order time
//   - Status: The lifecycle enum and its manual transition table
//
// Key business rules:
//   - Manual transitions follow PAYMENT_COMPLETED -> PROCESSING -> SHIPPED -> DELIVERED -> RETURNED,
//     with PROCESSING -> CANCELLED as the only branch
//   - PENDING_PAYMENT, PAYMENT_FAILED, CANCELLED and RETURNED accept no manual transition
//   - Orders are never deleted; a transition replaces the whole record with the server's version
//   - Item prices are snapshots and never follow later product price changes
package order
