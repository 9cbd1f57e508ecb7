package mirror

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"tedtam-service/internal/domain/customer"
	xerrors "tedtam-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSource struct {
	allRecords   []customer.RawRecord
	allErr       error
	ownedRecords []customer.RawRecord
	ownedErr     error

	allCalls   int
	ownedCalls int
	ownedWith  string
}

func (f *fakeSource) FetchAll(ctx context.Context) ([]customer.RawRecord, error) {
	f.allCalls++
	return f.allRecords, f.allErr
}

func (f *fakeSource) FetchOwned(ctx context.Context, ownerID string) ([]customer.RawRecord, error) {
	f.ownedCalls++
	f.ownedWith = ownerID
	return f.ownedRecords, f.ownedErr
}

func rawWithUID(uid string) customer.RawRecord {
	return customer.RawRecord{UID: sql.NullString{String: uid, Valid: true}}
}

func TestRefreshBroadFetch(t *testing.T) {
	src := &fakeSource{allRecords: []customer.RawRecord{rawWithUID("a"), rawWithUID("b")}}
	m := New(src, zap.NewNop())

	got := m.Refresh(context.Background(), "agent-1")

	assert.Len(t, got, 2)
	assert.Equal(t, 1, src.allCalls)
	assert.Zero(t, src.ownedCalls, "no retry when the broad fetch succeeds")
	assert.Equal(t, "a", m.Snapshot()[0].UID)
}

func TestRefreshPermissionDeniedRetriesScopedOnce(t *testing.T) {
	src := &fakeSource{
		allErr:       xerrors.ErrPermissionDenied,
		ownedRecords: []customer.RawRecord{rawWithUID("mine")},
	}
	m := New(src, zap.NewNop())

	got := m.Refresh(context.Background(), "agent-1")

	assert.Len(t, got, 1)
	assert.Equal(t, "mine", got[0].UID)
	assert.Equal(t, 1, src.allCalls)
	assert.Equal(t, 1, src.ownedCalls)
	assert.Equal(t, "agent-1", src.ownedWith)
}

func TestRefreshPermissionDeniedWithoutIdentity(t *testing.T) {
	src := &fakeSource{allErr: xerrors.ErrPermissionDenied}
	m := New(src, zap.NewNop())

	got := m.Refresh(context.Background(), "")

	assert.Empty(t, got)
	assert.Zero(t, src.ownedCalls, "no identity means no scoped retry")
	assert.Empty(t, m.Snapshot())
}

func TestRefreshScopedRetryAlsoFails(t *testing.T) {
	src := &fakeSource{
		allErr:   xerrors.ErrPermissionDenied,
		ownedErr: errors.New("connection reset"),
	}
	m := New(src, zap.NewNop())

	got := m.Refresh(context.Background(), "agent-1")

	assert.Empty(t, got)
	assert.NotNil(t, got, "failure yields an empty list, never nil")
	assert.Equal(t, 1, src.ownedCalls)
}

func TestRefreshOtherErrorDoesNotRetry(t *testing.T) {
	src := &fakeSource{allErr: errors.New("timeout")}
	m := New(src, zap.NewNop())

	got := m.Refresh(context.Background(), "agent-1")

	assert.Empty(t, got)
	assert.Zero(t, src.ownedCalls, "only permission denial triggers the scoped retry")
}

func TestRefreshReplacesPreviousSnapshot(t *testing.T) {
	src := &fakeSource{allRecords: []customer.RawRecord{rawWithUID("a")}}
	m := New(src, zap.NewNop())
	m.Refresh(context.Background(), "")

	src.allRecords = nil
	src.allErr = errors.New("db down")
	m.Refresh(context.Background(), "")

	assert.Empty(t, m.Snapshot(), "a failed refresh clears the snapshot rather than serving stale data")
}

func TestSnapshotReturnsCopy(t *testing.T) {
	src := &fakeSource{allRecords: []customer.RawRecord{rawWithUID("a")}}
	m := New(src, zap.NewNop())
	m.Refresh(context.Background(), "")

	snap := m.Snapshot()
	snap[0].UID = "mutated"

	assert.Equal(t, "a", m.Snapshot()[0].UID)
}

func TestLoadingClearsAfterRefresh(t *testing.T) {
	m := New(&fakeSource{}, zap.NewNop())

	assert.False(t, m.Loading())
	m.Refresh(context.Background(), "")
	assert.False(t, m.Loading())
}
