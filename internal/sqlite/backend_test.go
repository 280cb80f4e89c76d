// Tests for the SQLite backend lifecycle and durability.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/christianbiango/team-up/pkg/types"
)

// newTestBackend creates a backend opened against a temp directory.
func newTestBackend(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend()
	if err := b.Open(types.Config{DataDir: dir}); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return b, dir
}

func testEvent(id string) *types.Event {
	return &types.Event{
		ID:              id,
		Title:           "Match",
		SportType:       "football",
		SkillLevel:      "beginner",
		DateTime:        time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC),
		Duration:        90,
		MaxParticipants: 10,
		OrganizerID:     "U1",
		Status:          types.EventStatusOpen,
		CreatedAt:       time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBackend_Open(t *testing.T) {
	dir := t.TempDir()
	b := NewBackend()
	config := types.Config{DataDir: filepath.Join(dir, "data")}

	if err := b.Open(config); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer b.Close()

	if _, err := os.Stat(filepath.Join(config.DataDir, dbFileName)); os.IsNotExist(err) {
		t.Error("teamup.db not created")
	}

	if err := b.Open(config); err != types.ErrAlreadyOpen {
		t.Errorf("expected ErrAlreadyOpen, got %v", err)
	}
}

func TestBackend_OpenValidatesConfig(t *testing.T) {
	b := NewBackend()
	if err := b.Open(types.Config{}); err != types.ErrDataDirEmpty {
		t.Fatalf("expected ErrDataDirEmpty, got %v", err)
	}
}

func TestBackend_Close(t *testing.T) {
	b, _ := newTestBackend(t)

	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close should not error, got %v", err)
	}

	if err := b.Events().Put(testEvent("E1")); err != types.ErrStoreClosed {
		t.Errorf("expected ErrStoreClosed, got %v", err)
	}
	if _, err := b.Queue().List(); err != types.ErrStoreClosed {
		t.Errorf("expected ErrStoreClosed, got %v", err)
	}
}

func TestBackend_SurvivesReopen(t *testing.T) {
	b, dir := newTestBackend(t)

	if err := b.Events().Put(testEvent("E1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	item := types.NewEventQueueItem(types.ActionCreate, testEvent("E1"), 42)
	if err := b.Queue().Enqueue(item); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A fresh backend against the same directory sees the same data.
	b2 := NewBackend()
	if err := b2.Open(types.Config{DataDir: dir}); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b2.Close()

	event, err := b2.Events().Get("E1")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if event.Title != "Match" {
		t.Errorf("event title = %q after reopen", event.Title)
	}

	items, err := b2.Queue().List()
	if err != nil {
		t.Fatalf("List after reopen: %v", err)
	}
	if len(items) != 1 || items[0].ID != item.ID {
		t.Errorf("queue after reopen = %+v", items)
	}
}

func TestBackend_ClearAll(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	if err := b.Events().Put(testEvent("E1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := b.Queue().Enqueue(types.NewEventQueueItem(types.ActionCreate, testEvent("E1"), 1)); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	if err := b.ClearAll(); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}

	events, err := b.Events().List(types.EventFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events not cleared: %d left", len(events))
	}
	n, err := b.Queue().Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 0 {
		t.Errorf("queue not cleared: %d left", n)
	}
}

func TestBackend_ExportSnapshot(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	if err := b.Events().Put(testEvent("E1")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "snapshot")
	if err := b.ExportSnapshot(dir); err != nil {
		t.Fatalf("ExportSnapshot: %v", err)
	}

	for _, name := range []string{
		"events.jsonl", "participations.jsonl", "profiles.jsonl", "sync_queue.jsonl",
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing snapshot file %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "events.jsonl"))
	if err != nil {
		t.Fatalf("read events.jsonl: %v", err)
	}
	if len(data) == 0 {
		t.Error("events.jsonl is empty")
	}
}
