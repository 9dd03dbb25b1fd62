// Package journal records the decisions taken through this service: order
// status changes and product moderation outcomes.
//
// Every successful transition produces one Entry. The Entry is persisted in the
// decision journal and, in the same transaction, as an outbox Message carrying
// the Event that is later published to the message broker.
package journal
