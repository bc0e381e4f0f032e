// Package events defines the port fleet events leave the services
// through. Implementations fan them out to RabbitMQ and the live feed.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
)

type Publisher interface {
	Publish(ctx context.Context, event models.FleetEvent) error
}

// New builds a fleet event with a fresh id and timestamp.
func New(eventType types.EventType, fleet, actor string, payload map[string]any) models.FleetEvent {
	return models.FleetEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Fleet:      fleet,
		Actor:      actor,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, models.FleetEvent) error { return nil }

// Multi publishes to every wrapped publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event models.FleetEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
