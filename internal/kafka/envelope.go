package kafka

import (
	"encoding/json"
	"time"
)

// Envelope wraps every event on the wire. Type is the event name
// (PickupCreated, PickupUpdated, PickupDeleted) and Payload the serialized
// pickup DTO, or just the id for deletes.
type Envelope struct {
	MessageID     string          `json:"messageId"`
	CorrelationID string          `json:"correlationId,omitempty"`
	Type          string          `json:"type"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Payload       json.RawMessage `json:"payload"`
}
