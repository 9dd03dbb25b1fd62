// Package ports defines the contracts between the application core and its adapters:
// the marketplace API gateways, the decision journal with its outbox, and the
// event publisher. Adapters live under internal/adapters.
package ports
