package kafka

import (
	"context"
	"fmt"

	apppickup "wastetrack/internal/app/pickup"
	"wastetrack/internal/config"
	"wastetrack/internal/logging"
)

const (
	PickupCreatedType = "PickupCreated"
	PickupUpdatedType = "PickupUpdated"
	PickupDeletedType = "PickupDeleted"
)

type pickupEvents struct {
	bus         Bus
	topicPrefix string
	logger      logging.Logger
}

func NewPickupEvents(bus Bus, cfg config.KafkaConfig, logger logging.Logger) apppickup.Events {
	return &pickupEvents{
		bus:         bus,
		topicPrefix: cfg.TopicPrefix,
		logger:      logger.With("component", "pickup_events"),
	}
}

func (e *pickupEvents) topic() string {
	return e.topicPrefix + "pickups"
}

func (e *pickupEvents) PickupCreated(ctx context.Context, p *apppickup.PickupDto) error {
	if err := e.bus.Publish(ctx, e.topic(), PickupCreatedType, p); err != nil {
		return fmt.Errorf("publish PickupCreated: %w", err)
	}
	return nil
}

func (e *pickupEvents) PickupUpdated(ctx context.Context, p *apppickup.PickupDto) error {
	if err := e.bus.Publish(ctx, e.topic(), PickupUpdatedType, p); err != nil {
		return fmt.Errorf("publish PickupUpdated: %w", err)
	}
	return nil
}

func (e *pickupEvents) PickupDeleted(ctx context.Context, id string) error {
	payload := struct {
		ID string `json:"id"`
	}{ID: id}

	if err := e.bus.Publish(ctx, e.topic(), PickupDeletedType, payload); err != nil {
		return fmt.Errorf("publish PickupDeleted: %w", err)
	}
	return nil
}
