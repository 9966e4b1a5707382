package pickup

import "context"

// Events publishes pickup lifecycle notifications. Publishing is best effort:
// the caller logs failures and never fails the request over them.
type Events interface {
	PickupCreated(ctx context.Context, p *PickupDto) error
	PickupUpdated(ctx context.Context, p *PickupDto) error
	PickupDeleted(ctx context.Context, id string) error
}

type noopEvents struct{}

// NewNoopEvents returns an Events sink that discards everything.
func NewNoopEvents() Events { return noopEvents{} }

func (noopEvents) PickupCreated(context.Context, *PickupDto) error { return nil }
func (noopEvents) PickupUpdated(context.Context, *PickupDto) error { return nil }
func (noopEvents) PickupDeleted(context.Context, string) error     { return nil }
