package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Envelope is the wire form of an event sent to viewers.
type Envelope struct {
	Type      string    `json:"type"`
	Room      string    `json:"room"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub owns the websocket connections of this process and delivers events to
// the rooms they joined.
//
// Example:
//
//	hub := realtime.NewHub(log)
//	e.GET("/ws", func(c echo.Context) error {
//	    return hub.Serve(c.Response(), c.Request(), func(id kernel.UUID) bool { return id == callerCompany })
//	})
//	_ = hub.Publish(ctx, companyID, ports.EventNewOrder, payload)
type Hub struct {
	registry *Registry
	upgrader websocket.Upgrader
	log      *zap.Logger

	mu      sync.RWMutex
	clients map[ConnID]*Client
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		registry: NewRegistry(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log:     log.With(zap.String("component", "realtime")),
		clients: make(map[ConnID]*Client),
	}
}

// Registry exposes the room registry.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// Serve upgrades the request and runs the connection until it closes.
// canJoin may be nil to allow every company.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, canJoin JoinPolicy) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := newClient(ConnID(uuid.NewString()), h, conn, canJoin)
	h.register(c)

	go c.writePump()
	c.readPump()
	return nil
}

// Publish delivers an event to the company room of this process.
func (h *Hub) Publish(_ context.Context, companyID kernel.UUID, kind ports.EventKind, payload any) error {
	data, err := encode(RoomName(companyID), kind, payload)
	if err != nil {
		return err
	}
	h.Deliver(RoomName(companyID), data)
	metrics.RealtimeEventsTotal.WithLabelValues(string(kind)).Inc()
	return nil
}

// Deliver sends an encoded envelope to every connection in room and returns
// how many received it. Connections whose buffer is full are dropped.
func (h *Hub) Deliver(room string, data []byte) int {
	members := h.registry.Members(room)
	if len(members) == 0 {
		return 0
	}

	var delivered int
	var slow []*Client
	h.mu.RLock()
	for _, id := range members {
		c, ok := h.clients[id]
		if !ok {
			continue
		}
		if c.enqueue(data) {
			delivered++
		} else {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warn("dropping slow connection", zap.String("conn_id", string(c.id)))
		h.unregister(c)
	}
	return delivered
}

// Connections returns the number of live connections.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.unregister(c)
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	metrics.RealtimeConnections.Inc()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()

	if !ok {
		return
	}
	h.registry.Remove(c.id)
	c.close()
	metrics.RealtimeConnections.Dec()
}

func encode(room string, kind ports.EventKind, payload any) ([]byte, error) {
	return json.Marshal(Envelope{
		Type:      string(kind),
		Room:      room,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
}
