package eventstore

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/structhr/structhr/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db)
}

func TestEventStoreAppendAndRetrieve(t *testing.T) {
	store := newTestStore(t)

	ctx := t.Context()
	streamID := "EMP01"
	eventType := "TestEvent"
	payload := []byte(`{"test": "data"}`)
	metadata := map[string]string{"key": "value"}

	err := store.Append(ctx, streamID, eventType, payload, metadata)
	if err != nil {
		t.Fatalf("failed to append event: %v", err)
	}

	events, err := store.GetByStreamID(ctx, streamID)
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	event := events[0]
	if event.StreamID() != streamID {
		t.Errorf("expected stream_id %s, got %s", streamID, event.StreamID())
	}
	if event.Type() != eventType {
		t.Errorf("expected event_type %s, got %s", eventType, event.Type())
	}
	if !bytes.Equal(event.Payload(), payload) {
		t.Errorf("expected payload %s, got %s", payload, event.Payload())
	}
	if event.Metadata()["key"] != "value" {
		t.Errorf("expected metadata key=value, got %v", event.Metadata())
	}
}

func TestEventStoreGetRange(t *testing.T) {
	store := newTestStore(t)

	ctx := t.Context()
	now := time.Now()

	for range 3 {
		if err := store.Append(ctx, StreamSystem, "Event", []byte("data"), nil); err != nil {
			t.Fatalf("failed to append event: %v", err)
		}
	}

	events, err := store.GetRange(ctx, now.Add(-1*time.Hour), now.Add(1*time.Hour))
	if err != nil {
		t.Fatalf("failed to get range: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	// Outside the range
	events, err = store.GetRange(ctx, now.Add(-2*time.Hour), now.Add(-1*time.Hour))
	if err != nil {
		t.Fatalf("failed to get range: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected 0 events outside range, got %d", len(events))
	}
}

func TestAppendTodayChanged(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	if err := AppendTodayChanged(ctx, store, "2024-03-01", "2024-03-02"); err != nil {
		t.Fatalf("failed to append: %v", err)
	}

	events, err := store.GetByStreamID(ctx, StreamSystem)
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 1 || events[0].Type() != TypeTodayChanged {
		t.Fatalf("expected one TodayChanged event, got %v", events)
	}

	var p TodayChangedPayload
	if err := json.Unmarshal(events[0].Payload(), &p); err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}
	if p.Previous != "2024-03-01" || p.Current != "2024-03-02" {
		t.Errorf("unexpected payload: %+v", p)
	}
}

func TestAppendEmployeeCreatedUsesEmpCodeStream(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	p := EmployeeCreatedPayload{
		EmpCode:       "EMP07",
		Name:          "Ada",
		JoiningDate:   "2025-01-15",
		InitialStatus: "Active",
	}
	if err := AppendEmployeeCreated(ctx, store, p); err != nil {
		t.Fatalf("failed to append: %v", err)
	}

	events, err := store.GetByStreamID(ctx, "EMP07")
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 1 || events[0].Type() != TypeEmployeeCreated {
		t.Fatalf("expected one EmployeeCreated event on EMP07 stream, got %v", events)
	}
}
