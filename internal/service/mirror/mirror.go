// internal/service/mirror/mirror.go
package mirror

import (
	"context"
	"errors"
	"sync"

	"tedtam-service/internal/domain/customer"
	xerrors "tedtam-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Source is the raw fetch surface of the customer store.
type Source interface {
	FetchAll(ctx context.Context) ([]customer.RawRecord, error)
	FetchOwned(ctx context.Context, ownerID string) ([]customer.RawRecord, error)
}

// Mirror keeps the latest normalized customer snapshot in memory. Refresh is
// idempotent and fails soft: any fetch failure yields an empty snapshot plus
// a logged diagnostic, never an error to the caller. Concurrent refreshes are
// last-write-wins.
type Mirror struct {
	source Source
	logger *zap.Logger

	mu       sync.RWMutex
	snapshot []customer.Customer
	loading  bool
}

func New(source Source, logger *zap.Logger) *Mirror {
	return &Mirror{
		source:   source,
		logger:   logger,
		snapshot: []customer.Customer{},
	}
}

// Refresh replaces the snapshot with a fresh full fetch, newest first.
//
// The broad fetch runs first. If row-level security rejects it and an owner
// identity is available, exactly one retry scoped to that owner is issued.
// A missing identity on the retry path means "no data available", not an
// error.
func (m *Mirror) Refresh(ctx context.Context, ownerID string) []customer.Customer {
	m.setLoading(true)
	defer m.setLoading(false)

	records, err := m.source.FetchAll(ctx)
	if err != nil {
		if !errors.Is(err, xerrors.ErrPermissionDenied) {
			m.logger.Warn("customer fetch failed", zap.Error(err))
			return m.store(nil)
		}
		if ownerID == "" {
			m.logger.Warn("customer fetch rejected by row-level security, no owner identity to retry with")
			return m.store(nil)
		}
		records, err = m.source.FetchOwned(ctx, ownerID)
		if err != nil {
			m.logger.Warn("owner-scoped customer fetch failed",
				zap.Error(err),
				zap.String("owner_id", ownerID),
			)
			return m.store(nil)
		}
	}

	return m.store(customer.NormalizeAll(records))
}

// Snapshot returns a copy of the current customer list.
func (m *Mirror) Snapshot() []customer.Customer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]customer.Customer, len(m.snapshot))
	copy(out, m.snapshot)
	return out
}

// Loading reports whether a refresh is in flight. It does not distinguish
// "still loading" from "stalled"; no timeout is applied to the fetch.
func (m *Mirror) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *Mirror) store(list []customer.Customer) []customer.Customer {
	if list == nil {
		list = []customer.Customer{}
	}
	m.mu.Lock()
	m.snapshot = list
	m.mu.Unlock()

	out := make([]customer.Customer, len(list))
	copy(out, list)
	return out
}

func (m *Mirror) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}
