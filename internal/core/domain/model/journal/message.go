package journal

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// Event is the broker contract for a journal entry.
type Event struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	EntityID   int64     `json:"entity_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventOf converts an entry to its broker contract.
func EventOf(e Entry) Event {
	return Event{
		EventID:    e.ID().String(),
		Type:       e.Kind().String(),
		EntityID:   e.EntityID().Int64(),
		From:       e.From(),
		To:         e.To(),
		Reason:     e.Reason(),
		OccurredAt: e.OccurredAt(),
	}
}

// Message is an outbox record: an event waiting to be published.
// The key is the entity id so that events of one entity keep their order on a partition.
type Message struct {
	ID        kernel.UUID
	EventID   kernel.UUID
	Kind      Kind
	Key       string
	Payload   json.RawMessage
	CreatedAt time.Time
	SentAt    *time.Time
}

// NewMessage wraps the event of e into an outbox message.
func NewMessage(e Entry) (Message, error) {
	if err := e.Validate(); err != nil {
		return Message{}, err
	}
	payload, err := json.Marshal(EventOf(e))
	if err != nil {
		return Message{}, err
	}
	return Message{
		ID:        kernel.NewUUID(),
		EventID:   e.ID(),
		Kind:      e.Kind(),
		Key:       e.EntityID().String(),
		Payload:   payload,
		CreatedAt: e.OccurredAt(),
	}, nil
}

// IsSent reports whether the message was published.
func (m Message) IsSent() bool {
	return m.SentAt != nil
}
