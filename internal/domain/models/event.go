package models

import (
	"time"

	"github.com/beetracked/fleet-ops/internal/domain/types"
)

// FleetEvent is published whenever a shift, delivery or ride is recorded.
// It goes out to RabbitMQ and to the operator live feed.
type FleetEvent struct {
	ID         string          `json:"id"`
	Type       types.EventType `json:"type"`
	Fleet      string          `json:"fleet"`
	Actor      string          `json:"actor"`
	Payload    map[string]any  `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}
