// internal/websocket/hub.go
package websocket

import (
	"context"
	"sync"

	"tedtam-service/internal/domain/customer"
	"tedtam-service/internal/domain/ws"

	"go.uber.org/zap"
)

// Hub fans customer change events out to connected agents. There is one hub
// per process; clients register on upgrade and unregister on disconnect.
type Hub struct {
	clients map[string]map[*Client]bool
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client
	broadcast  chan *ws.Message

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *ws.Message, 256),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.broadcastToAll(msg)
		}
	}
}

// BroadcastCustomerChange relays one change-feed event to every connected
// client. Clients refetch through the HTTP API; the event carries no row data.
func (h *Hub) BroadcastCustomerChange(ev customer.ChangeEvent) {
	h.broadcast <- ws.NewMessage(ws.EventTypeCustomerChange, ev)
}

// TotalClients reports the number of open connections.
func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.agentID] == nil {
		h.clients[client.agentID] = make(map[*Client]bool)
	}
	h.clients[client.agentID][client] = true

	h.logger.Info("ws client connected",
		zap.String("agent_id", client.agentID),
		zap.Int("total", h.totalClients()),
	)

	client.SendMessage(ws.NewMessage(ws.EventTypeConnected, map[string]interface{}{
		"agent_id": client.agentID,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.agentID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			client.Close()

			if len(clients) == 0 {
				delete(h.clients, client.agentID)
			}

			h.logger.Info("ws client disconnected",
				zap.String("agent_id", client.agentID),
				zap.Int("total", h.totalClients()),
			)
		}
	}
}

func (h *Hub) broadcastToAll(msg *ws.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.SendMessage(msg)
		}
	}
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
	}
	h.clients = make(map[string]map[*Client]bool)
}
