package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/beetracked/fleet-ops/pkg/logger"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
)

// ConnectionHub keeps track of all active WebSocket connections.
type ConnectionHub struct {
	clients map[string]*Conn
	l       logger.Logger
	mu      sync.Mutex
	wg      sync.WaitGroup
}

func NewConnHub(l logger.Logger) *ConnectionHub {
	return &ConnectionHub{
		clients: make(map[string]*Conn),
		l:       l,
	}
}

// Add registers a new connection in the hub.
// An existing connection with the same id is closed first.
func (h *ConnectionHub) Add(newConn *Conn) error {
	if newConn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "add_ws_connection")

	if existing, ok := h.clients[newConn.id]; ok {
		h.l.Warn(ctx,
			"replacing existing connection",
			"conn_id", existing.id,
		)
		if err := existing.Close(); err != nil {
			h.l.Warn(ctx,
				"failed to close existing conn",
				"conn_id", existing.id,
				"err", err.Error(),
			)
		}
	}

	h.clients[newConn.id] = newConn
	h.wg.Add(1)

	return nil
}

// Delete removes and closes a connection by id
func (h *ConnectionHub) Delete(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_connection_delete")

	conn, ok := h.clients[id]
	if !ok {
		return ErrConnIsNotFound
	}

	if err := conn.Close(); err != nil {
		h.l.Warn(ctx,
			"failed to close conn",
			"conn_id", conn.id,
			"err", err.Error(),
		)
	}

	delete(h.clients, id)
	h.wg.Done()

	return nil
}

// SendTo sends a message to a specific client by id.
// Returns ErrConnIsNotFound if the connection does not exist.
func (h *ConnectionHub) SendTo(id string, msg map[string]any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.clients[id]; ok {
		return conn.Send(msg)
	}
	return ErrConnIsNotFound
}

// Broadcast sends a message to every connected client.
// Dead connections are dropped from the hub.
func (h *ConnectionHub) Broadcast(msg map[string]any) {
	h.mu.Lock()
	clients := make([]*Conn, 0, len(h.clients))
	for _, conn := range h.clients {
		clients = append(clients, conn)
	}
	h.mu.Unlock()

	for _, conn := range clients {
		if err := conn.Send(msg); err != nil {
			_ = h.Delete(conn.id)
		}
	}
}

// Len returns the number of active connections
func (h *ConnectionHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close closes every websocket connection
func (h *ConnectionHub) Close() {
	ctx := wrap.WithAction(context.Background(), "hub_close")

	// copy clients under the lock
	h.mu.Lock()
	clients := make([]*Conn, 0, len(h.clients))
	for _, conn := range h.clients {
		clients = append(clients, conn)
	}
	h.mu.Unlock()
	// close outside the lock
	for _, conn := range clients {
		_ = h.Delete(conn.id)
	}

	h.wg.Wait()

	h.l.Info(ctx, "all websocket connections closed gracefully")
}
