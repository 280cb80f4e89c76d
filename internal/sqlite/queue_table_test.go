// Tests for the sync queue accessor: coalescing, ordering, attempts.
package sqlite

import (
	"testing"

	"github.com/christianbiango/team-up/pkg/types"
)

func TestQueue_EnqueueCoalesces(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	first := testEvent("E1")
	first.Title = "Match"
	second := testEvent("E1")
	second.Title = "Rematch"

	if err := b.Queue().Enqueue(types.NewEventQueueItem(types.ActionUpdate, first, 1)); err != nil {
		t.Fatalf("first Enqueue: %v", err)
	}
	if err := b.Queue().Enqueue(types.NewEventQueueItem(types.ActionUpdate, second, 2)); err != nil {
		t.Fatalf("second Enqueue: %v", err)
	}

	items, err := b.Queue().List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 coalesced item, got %d", len(items))
	}
	if items[0].Event.Title != "Rematch" {
		t.Errorf("coalesced snapshot carries %q, want the later edit", items[0].Event.Title)
	}
	if items[0].Timestamp != 2 {
		t.Errorf("timestamp = %d, want 2", items[0].Timestamp)
	}
}

func TestQueue_SeparateActionsKeepSeparateSlots(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	event := testEvent("E1")
	if err := b.Queue().Enqueue(types.NewEventQueueItem(types.ActionUpdate, event, 1)); err != nil {
		t.Fatalf("Enqueue update: %v", err)
	}
	if err := b.Queue().Enqueue(types.NewEventQueueItem(types.ActionDelete, event, 2)); err != nil {
		t.Fatalf("Enqueue delete: %v", err)
	}

	n, err := b.Queue().Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 items for distinct actions, got %d", n)
	}
}

func TestQueue_ListPreservesInsertionOrder(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	if err := b.Queue().Enqueue(types.NewEventQueueItem(types.ActionCreate, testEvent("E1"), 1)); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := b.Queue().Enqueue(types.NewEventQueueItem(types.ActionCreate, testEvent("E2"), 2)); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	// Coalescing E1 must not move it behind E2.
	if err := b.Queue().Enqueue(types.NewEventQueueItem(types.ActionCreate, testEvent("E1"), 3)); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	items, err := b.Queue().List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Event.ID != "E1" || items[1].Event.ID != "E2" {
		t.Errorf("order = [%s %s], want [E1 E2]", items[0].Event.ID, items[1].Event.ID)
	}
}

func TestQueue_BumpAttempts(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	item := types.NewEventQueueItem(types.ActionCreate, testEvent("E1"), 1)
	if err := b.Queue().Enqueue(item); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	for want := 1; want <= 3; want++ {
		got, err := b.Queue().BumpAttempts(item.ID)
		if err != nil {
			t.Fatalf("BumpAttempts: %v", err)
		}
		if got != want {
			t.Errorf("attempts = %d, want %d", got, want)
		}
	}

	if _, err := b.Queue().BumpAttempts("missing"); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound for missing item, got %v", err)
	}
}

func TestQueue_Dequeue(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	item := types.NewEventQueueItem(types.ActionCreate, testEvent("E1"), 1)
	if err := b.Queue().Enqueue(item); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := b.Queue().Dequeue(item.ID); err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if err := b.Queue().Dequeue(item.ID); err != nil {
		t.Errorf("Dequeue of absent item should not error, got %v", err)
	}

	n, err := b.Queue().Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 0 {
		t.Errorf("queue length = %d, want 0", n)
	}
}

func TestQueue_EnqueueValidates(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	bad := &types.QueueItem{ID: "x", Table: types.TableProfiles, Action: types.ActionDelete}
	if err := b.Queue().Enqueue(bad); err == nil {
		t.Fatal("expected validation error for profile delete")
	}
}

func TestQueue_RoundTripsTaggedPayloads(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	participation := &types.Participation{ID: "P1", EventID: "E1", ParticipantID: "U1"}
	profile := &types.Profile{ID: "PR1", UserID: "U1", Username: "chris", FavoriteSports: []string{"football"}}

	if err := b.Queue().Enqueue(types.NewParticipationQueueItem(types.ActionCreate, participation, 1)); err != nil {
		t.Fatalf("Enqueue participation: %v", err)
	}
	if err := b.Queue().Enqueue(types.NewProfileQueueItem(types.ActionUpdate, profile, 2)); err != nil {
		t.Fatalf("Enqueue profile: %v", err)
	}

	items, err := b.Queue().List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	if items[0].Participation == nil || items[0].Participation.EventID != "E1" {
		t.Errorf("participation payload lost: %+v", items[0])
	}
	if items[0].Event != nil || items[0].Profile != nil {
		t.Error("participation item carries foreign payloads")
	}
	if items[1].Profile == nil || items[1].Profile.Username != "chris" {
		t.Errorf("profile payload lost: %+v", items[1])
	}
}
