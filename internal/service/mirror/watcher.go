// internal/service/mirror/watcher.go
package mirror

import (
	"context"

	"tedtam-service/internal/domain/customer"

	"go.uber.org/zap"
)

// Refresher is the slice of Mirror the watcher needs.
type Refresher interface {
	Refresh(ctx context.Context, ownerID string) []customer.Customer
}

// Broadcaster relays change events to connected clients.
type Broadcaster interface {
	BroadcastCustomerChange(ev customer.ChangeEvent)
}

// Watcher drives the mirror from the change feed. Every event triggers one
// full refresh; events are not coalesced, so rapid successive changes cost
// one fetch each.
type Watcher struct {
	events  <-chan customer.ChangeEvent
	mirror  Refresher
	hub     Broadcaster
	ownerID string
	logger  *zap.Logger
}

// NewWatcher wires a change-event stream to the mirror. ownerID is the
// service identity used for the scoped retry path; it may be empty. hub may
// be nil when no realtime clients are served.
func NewWatcher(events <-chan customer.ChangeEvent, m Refresher, hub Broadcaster, ownerID string, logger *zap.Logger) *Watcher {
	return &Watcher{
		events:  events,
		mirror:  m,
		hub:     hub,
		ownerID: ownerID,
		logger:  logger,
	}
}

// Run consumes events until the context ends or the stream closes. Teardown
// is deterministic: returning stops all refresh activity.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.events:
			if !ok {
				return
			}
			w.logger.Debug("customer change received",
				zap.String("kind", string(ev.Kind)),
				zap.String("uid", ev.UID),
			)
			w.mirror.Refresh(ctx, w.ownerID)
			if w.hub != nil {
				w.hub.BroadcastCustomerChange(ev)
			}
		}
	}
}
