package today

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structhr/structhr/internal/errors"
	"github.com/structhr/structhr/internal/eventstore"
	"github.com/structhr/structhr/internal/kv"
	"github.com/structhr/structhr/internal/storage"
)

type fakeBroadcaster struct {
	published int
}

func (f *fakeBroadcaster) Publish(context.Context) error {
	f.published++
	return nil
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateFormat, s)
	require.NoError(t, err)
	return d
}

func newTestService(t *testing.T) (*Service, *fakeBroadcaster, eventstore.Store) {
	t.Helper()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	events := eventstore.NewSQLiteStore(db)
	bc := &fakeBroadcaster{}
	svc := NewService(NewStore(kv.NewMemoryStore()), NewNotifier(), events, bc, nil)
	return svc, bc, events
}

func TestCurrentWhenUnset(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, ok, err := svc.Current(t.Context())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetAcceptsAnyDateWhenUnset(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := t.Context()

	require.NoError(t, svc.Set(ctx, date(t, "2025-12-02")))

	got, ok, err := svc.Current(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2025-12-02", got.Format(DateFormat))
}

func TestSetRejectsBackwards(t *testing.T) {
	svc, bc, _ := newTestService(t)
	ctx := t.Context()

	require.NoError(t, svc.Set(ctx, date(t, "2025-12-02")))
	err := svc.Set(ctx, date(t, "2025-12-01"))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))

	// Value unchanged, no extra broadcast
	got, _, _ := svc.Current(ctx)
	assert.Equal(t, "2025-12-02", got.Format(DateFormat))
	assert.Equal(t, 1, bc.published)
}

func TestSetSameDateIsAccepted(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := t.Context()

	require.NoError(t, svc.Set(ctx, date(t, "2025-12-02")))
	require.NoError(t, svc.Set(ctx, date(t, "2025-12-02")))
}

func TestSetBroadcastsExactlyOnce(t *testing.T) {
	svc, bc, _ := newTestService(t)
	ctx := t.Context()

	fired := 0
	svc.Notifier().OnChange(func() { fired++ })

	require.NoError(t, svc.Set(ctx, date(t, "2025-12-02")))
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, bc.published)
}

func TestSetRecordsEvent(t *testing.T) {
	svc, _, events := newTestService(t)
	ctx := t.Context()

	require.NoError(t, svc.Set(ctx, date(t, "2025-12-02")))
	require.NoError(t, svc.Set(ctx, date(t, "2025-12-03")))

	recorded, err := events.GetByStreamID(ctx, eventstore.StreamSystem)
	require.NoError(t, err)
	require.Len(t, recorded, 2)
	assert.Equal(t, eventstore.TypeTodayChanged, recorded[0].Type())
}

func TestMalformedStoredValueTreatedAsAbsent(t *testing.T) {
	backend := kv.NewMemoryStore()
	svc := NewService(NewStore(backend), NewNotifier(), nil, nil, nil)
	ctx := t.Context()

	require.NoError(t, backend.Set(ctx, Key, "not-a-date"))

	_, ok, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// A malformed value places no floor under the monotonic rule.
	require.NoError(t, svc.Set(ctx, date(t, "2020-01-01")))
}
