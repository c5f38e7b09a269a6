package realtime

import (
	"encoding/json"
	"sync"
)

// Publisher delivers events to connected principals, best-effort and
// at-most-once. Delivery failure never fails the calling operation.
type Publisher interface {
	Publish(principalID, event string, payload interface{})
}

// Event is the wire format pushed to clients.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Hub tracks connected clients per principal. A principal may hold several
// connections (multiple tabs or devices).
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

var _ Publisher = (*Hub)(nil)

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]struct{})}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[c.principalID]
	if !ok {
		conns = make(map[*Client]struct{})
		h.clients[c.principalID] = conns
	}
	conns[c] = struct{}{}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[c.principalID]
	if !ok {
		return
	}
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.clients, c.principalID)
	}
}

// Publish sends an event to every connection of a principal. Slow consumers
// are dropped rather than blocking the sender.
func (h *Hub) Publish(principalID, event string, payload interface{}) {
	message, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[principalID] {
		select {
		case c.send <- message:
		default:
			go c.Close()
		}
	}
}
