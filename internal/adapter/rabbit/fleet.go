package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/pkg/logger"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
	"github.com/beetracked/fleet-ops/pkg/metrics"
	"github.com/beetracked/fleet-ops/pkg/rabbit"
)

const serviceName = "fleet-ops"

// FleetExchange carries every fleet event, keyed "fleet.event.{type}".
const FleetExchange = "fleet_topic"

// FleetBroker publishes fleet events to RabbitMQ for downstream
// consumers (reporting, notifications).
type FleetBroker struct {
	client   *rabbit.RabbitMQ
	exchange string

	l logger.Logger
}

func NewFleetBroker(client *rabbit.RabbitMQ, log logger.Logger) *FleetBroker {
	return &FleetBroker{
		client:   client,
		exchange: FleetExchange,

		l: log,
	}
}

// Publish sends the event to the fleet exchange. Publish failures are
// the caller's to decide on; services treat them as non-fatal.
func (b *FleetBroker) Publish(ctx context.Context, event models.FleetEvent) error {
	ctx = wrap.WithAction(ctx, "rabbitmq_publish_fleet_event")

	if err := b.client.EnsureConnection(ctx); err != nil {
		b.l.Error(ctx, "ensure connection failed", err)
		return wrap.Error(ctx, err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to marshal event: %w", err))
	}

	key := fmt.Sprintf("fleet.event.%s", event.Type)

	err = retry(5, time.Second, func() error {
		if err := b.client.Channel.PublishWithContext(
			ctx,
			b.exchange, // exchange
			key,        // routing key
			false,      // mandatory
			false,      // immediate
			amqp091.Publishing{
				ContentType:   "application/json",
				CorrelationId: event.ID,
				Body:          body,
				Timestamp:     event.OccurredAt,
			},
		); err != nil {
			return fmt.Errorf("failed to publish with context: %w", err)
		}
		return nil
	})
	metrics.RecordRabbitMQPublish(serviceName, b.exchange, err)
	if err != nil {
		return wrap.Error(ctx, err)
	}

	return nil
}

func retry(n int, sleep time.Duration, fn func() error) error {
	var err error
	for range n {
		if err = fn(); err == nil {
			return nil
		}
		time.Sleep(sleep)
	}
	return err
}
