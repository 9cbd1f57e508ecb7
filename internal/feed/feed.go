// internal/feed/feed.go
//
// Redis-backed change feed for the customers table. Write paths publish one
// event per insert/update/delete; the mirror watcher subscribes and refetches.
package feed

import (
	"context"
	"encoding/json"

	"tedtam-service/internal/domain/customer"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channel is the pub/sub channel carrying customer change events.
const Channel = "customers:changes"

type Publisher struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewPublisher(rdb *redis.Client, logger *zap.Logger) *Publisher {
	return &Publisher{rdb: rdb, logger: logger}
}

// Publish emits one change event. Failures are logged, not returned: a lost
// notification degrades freshness, not correctness, since every refresh is a
// full refetch.
func (p *Publisher) Publish(ctx context.Context, ev customer.ChangeEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("failed to encode change event", zap.Error(err))
		return
	}
	if err := p.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		p.logger.Warn("failed to publish change event",
			zap.Error(err),
			zap.String("uid", ev.UID),
			zap.String("kind", string(ev.Kind)),
		)
	}
}

// Subscription is one open subscription to the change feed.
type Subscription struct {
	pubsub *redis.PubSub
	events chan customer.ChangeEvent
}

// Subscribe opens exactly one subscription and starts decoding events until
// Close is called or the context ends.
func Subscribe(ctx context.Context, rdb *redis.Client, logger *zap.Logger) *Subscription {
	sub := &Subscription{
		pubsub: rdb.Subscribe(ctx, Channel),
		events: make(chan customer.ChangeEvent, 16),
	}

	go func() {
		defer close(sub.events)
		for msg := range sub.pubsub.Channel() {
			var ev customer.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				logger.Warn("dropping malformed change event", zap.Error(err))
				continue
			}
			select {
			case sub.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return sub
}

// Events is the stream of decoded change events.
func (s *Subscription) Events() <-chan customer.ChangeEvent {
	return s.events
}

// Close tears the subscription down deterministically.
func (s *Subscription) Close() error {
	return s.pubsub.Close()
}
