// internal/websocket/client.go
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"tedtam-service/internal/domain/ws"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	agentID string
	logger  *zap.Logger

	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, agentID string, logger *zap.Logger) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		agentID: agentID,
		logger:  logger,
	}
}

// SendMessage queues a message for delivery, dropping it when the client's
// buffer is full rather than blocking the hub.
func (c *Client) SendMessage(msg *ws.Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("failed to encode ws message", zap.Error(err))
		return
	}

	select {
	case c.send <- payload:
	default:
		c.logger.Warn("ws client send buffer full, dropping message",
			zap.String("agent_id", c.agentID))
	}
}

// Close releases the outbound queue. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// ReadPump drains inbound frames until the connection drops. Inbound traffic
// is only keepalive; all data flows server to client.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("ws read error", zap.Error(err), zap.String("agent_id", c.agentID))
			}
			return
		}
	}
}

// WritePump flushes queued messages and pings on an interval.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
