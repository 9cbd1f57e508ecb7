// internal/domain/ws/types.go
package ws

import "time"

type EventType string

const (
	EventTypeConnected      EventType = "connected"
	EventTypeCustomerChange EventType = "customer_change"
	EventTypePing           EventType = "ping"
	EventTypePong           EventType = "pong"
)

// Message is the envelope for every frame on the realtime feed.
type Message struct {
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewMessage(t EventType, data interface{}) *Message {
	return &Message{
		Type:      t,
		Data:      data,
		Timestamp: time.Now(),
	}
}
