package persistence

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

func newTestRecords() []json.RawMessage {
	return []json.RawMessage{
		json.RawMessage(`{"description":"Buy milk"}`),
		json.RawMessage(`{"description":"Call mom\nat noon"}`),
		json.RawMessage(`{"description":"Buy milk"}`),
	}
}

func recordsString(records []json.RawMessage) string {
	data, _ := json.Marshal(records)
	return string(data)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	records := newTestRecords()

	if err := store.DumpRecords(records); err != nil {
		t.Fatalf("DumpRecords: %v", err)
	}

	loaded, err := store.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}

	if recordsString(records) != recordsString(loaded) {
		t.Errorf("round-trip mismatch.\nExpected: %s\nActual:   %s", recordsString(records), recordsString(loaded))
	}
}

func TestSQLiteStoreEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	loaded, err := store.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}

	if len(loaded) != 0 {
		t.Errorf("expected empty, got %d records", len(loaded))
	}
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	if err := store.DumpRecords(newTestRecords()); err != nil {
		t.Fatalf("DumpRecords (first): %v", err)
	}

	// Overwrite with fewer rows
	second := []json.RawMessage{json.RawMessage(`{"description":"only"}`)}
	if err := store.DumpRecords(second); err != nil {
		t.Fatalf("DumpRecords (second): %v", err)
	}

	loaded, err := store.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}

	if len(loaded) != 1 || string(loaded[0]) != `{"description":"only"}` {
		t.Errorf("expected a single 'only' record, got %s", recordsString(loaded))
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := store.DumpRecords(newTestRecords()); err != nil {
		t.Fatalf("DumpRecords: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore (reopen): %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if recordsString(loaded) != recordsString(newTestRecords()) {
		t.Errorf("unexpected records after reopen: %s", recordsString(loaded))
	}
}
