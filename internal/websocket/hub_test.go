package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"tedtam-service/internal/domain/customer"
	"tedtam-service/internal/domain/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestHubRegisterUnregisterCounts(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	c1 := NewClient(hub, nil, "agent-1", zap.NewNop())
	c2 := NewClient(hub, nil, "agent-1", zap.NewNop())
	c3 := NewClient(hub, nil, "agent-2", zap.NewNop())

	hub.Register <- c1
	hub.Register <- c2
	hub.Register <- c3
	waitFor(t, func() bool { return hub.TotalClients() == 3 })

	hub.unregister <- c2
	waitFor(t, func() bool { return hub.TotalClients() == 2 })
}

func TestHubRegisterSendsWelcome(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	c := NewClient(hub, nil, "agent-1", zap.NewNop())
	hub.Register <- c

	select {
	case payload := <-c.send:
		var msg ws.Message
		require.NoError(t, json.Unmarshal(payload, &msg))
		assert.Equal(t, ws.EventTypeConnected, msg.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("no welcome message delivered")
	}
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	c1 := NewClient(hub, nil, "agent-1", zap.NewNop())
	c2 := NewClient(hub, nil, "agent-2", zap.NewNop())
	hub.Register <- c1
	hub.Register <- c2
	waitFor(t, func() bool { return hub.TotalClients() == 2 })

	// Drain the welcome frames first.
	<-c1.send
	<-c2.send

	hub.BroadcastCustomerChange(customer.ChangeEvent{Kind: customer.ChangeUpdate, UID: "01X"})

	for _, c := range []*Client{c1, c2} {
		select {
		case payload := <-c.send:
			var msg ws.Message
			require.NoError(t, json.Unmarshal(payload, &msg))
			assert.Equal(t, ws.EventTypeCustomerChange, msg.Type)
		case <-time.After(2 * time.Second):
			t.Fatal("broadcast not delivered")
		}
	}
}
