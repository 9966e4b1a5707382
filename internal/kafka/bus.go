package kafka

import "context"

// Bus publishes pickup lifecycle events. A failed publish never rolls back
// the database write that produced it.
type Bus interface {
	Publish(ctx context.Context, topic string, msgType string, payload any) error
}
