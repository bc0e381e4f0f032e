package ws

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/pkg/logger"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
	"github.com/beetracked/fleet-ops/pkg/metrics"
	wsHub "github.com/beetracked/fleet-ops/pkg/wsHub"
)

const serviceName = "fleet-ops"

// Feed streams fleet events to connected dashboards. It doubles as an
// event publisher so the services can broadcast through it.
type Feed struct {
	hub      *wsHub.ConnectionHub
	upgrader websocket.Upgrader
	log      logger.Logger
}

func NewFeed(hub *wsHub.ConnectionHub, log logger.Logger) *Feed {
	return &Feed{
		hub: hub,
		upgrader: websocket.Upgrader{
			// CORS is enforced on the API routes, the feed is read-only
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// Events upgrades the connection and keeps it registered until the
// client goes away. Incoming messages are ignored.
func (f *Feed) Events(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "ws_events")

	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Error(ctx, "failed to upgrade websocket", err)
		return
	}

	id := uuid.NewString()
	c := wsHub.NewConn(r.Context(), id, conn)
	if err := f.hub.Add(c); err != nil {
		f.log.Error(ctx, "failed to register websocket connection", err)
		c.Close()
		return
	}

	metrics.WebSocketConnectionsGauge.WithLabelValues(serviceName).Inc()
	defer metrics.WebSocketConnectionsGauge.WithLabelValues(serviceName).Dec()

	f.log.Info(ctx, "websocket client connected", "conn_id", id)

	if err := c.Listen(func(msg any) error { return nil }); err != nil {
		f.log.Debug(ctx, "websocket client disconnected", "conn_id", id, "reason", err.Error())
	}
	_ = f.hub.Delete(id)
}

// Publish broadcasts the event to every connected client.
func (f *Feed) Publish(ctx context.Context, event models.FleetEvent) error {
	f.hub.Broadcast(map[string]any{
		"id":         event.ID,
		"type":       event.Type,
		"fleet":      event.Fleet,
		"actor":      event.Actor,
		"payload":    event.Payload,
		"occurredAt": event.OccurredAt,
	})
	return nil
}
