// Tests for the events table accessor.
package sqlite

import (
	"testing"
	"time"

	"github.com/christianbiango/team-up/pkg/types"
)

func TestEvents_PutIsIdempotent(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	event := testEvent("E1")
	if err := b.Events().Put(event); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if err := b.Events().Put(event); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	events, err := b.Events().List(types.EventFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event after double Put, got %d", len(events))
	}
}

func TestEvents_PutOverwritesWholeRecord(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	event := testEvent("E1")
	if err := b.Events().Put(event); err != nil {
		t.Fatalf("Put: %v", err)
	}

	updated := event.Clone()
	updated.Title = "Rematch"
	updated.Meta.Pending(types.ActionUpdate, 99)
	if err := b.Events().Put(updated); err != nil {
		t.Fatalf("Put update: %v", err)
	}

	got, err := b.Events().Get("E1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Rematch" {
		t.Errorf("title = %q, want Rematch", got.Title)
	}
	if !got.Meta.Offline || got.Meta.Action != types.ActionUpdate || got.Meta.Timestamp != 99 {
		t.Errorf("meta not persisted: %+v", got.Meta)
	}
}

func TestEvents_GetNotFound(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	if _, err := b.Events().Get("missing"); err != types.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEvents_DeleteMarkedRowsAreInvisible(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	event := testEvent("E1")
	event.Meta.Pending(types.ActionDelete, 1)
	if err := b.Events().Put(event); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if _, err := b.Events().Get("E1"); err != types.ErrNotFound {
		t.Errorf("Get on delete-marked row: expected ErrNotFound, got %v", err)
	}
	events, err := b.Events().List(types.EventFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("delete-marked row leaked into List: %+v", events)
	}

	// The row itself persists for the sync pass.
	if err := b.Events().Delete("E1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestEvents_ListFilters(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	past := testEvent("E1")
	past.DateTime = time.Now().Add(-24 * time.Hour)
	future := testEvent("E2")
	future.DateTime = time.Now().Add(24 * time.Hour)
	other := testEvent("E3")
	other.DateTime = time.Now().Add(48 * time.Hour)
	other.OrganizerID = "U2"

	for _, e := range []*types.Event{past, future, other} {
		if err := b.Events().Put(e); err != nil {
			t.Fatalf("Put %s: %v", e.ID, err)
		}
	}

	tests := []struct {
		name    string
		filter  types.EventFilter
		wantIDs []string
	}{
		{
			name:    "no filter returns everything date-ordered",
			filter:  types.EventFilter{},
			wantIDs: []string{"E1", "E2", "E3"},
		},
		{
			name:    "upcoming excludes past events",
			filter:  types.EventFilter{Upcoming: true},
			wantIDs: []string{"E2", "E3"},
		},
		{
			name:    "organizer filter",
			filter:  types.EventFilter{OrganizerID: "U2"},
			wantIDs: []string{"E3"},
		},
		{
			name:    "organizer and upcoming combine",
			filter:  types.EventFilter{OrganizerID: "U1", Upcoming: true},
			wantIDs: []string{"E2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := b.Events().List(tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(events) != len(tt.wantIDs) {
				t.Fatalf("got %d events, want %d", len(events), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if events[i].ID != id {
					t.Errorf("events[%d].ID = %s, want %s", i, events[i].ID, id)
				}
			}
		})
	}
}

func TestEvents_ListOrderIsStableForEqualDates(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	when := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for _, id := range []string{"B", "C", "A"} {
		e := testEvent(id)
		e.DateTime = when
		if err := b.Events().Put(e); err != nil {
			t.Fatalf("Put %s: %v", id, err)
		}
	}

	for range 3 {
		events, err := b.Events().List(types.EventFilter{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		got := []string{events[0].ID, events[1].ID, events[2].ID}
		want := []string{"A", "B", "C"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("unstable order: got %v, want %v", got, want)
			}
		}
	}
}

func TestEvents_CoordinatesRoundTrip(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	lat, lon := 48.8566, 2.3522
	event := testEvent("E1")
	event.Latitude = &lat
	event.Longitude = &lon
	event.IsGeocoded = true
	if err := b.Events().Put(event); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := b.Events().Get("E1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Latitude == nil || *got.Latitude != lat {
		t.Errorf("latitude = %v, want %v", got.Latitude, lat)
	}
	if got.Longitude == nil || *got.Longitude != lon {
		t.Errorf("longitude = %v, want %v", got.Longitude, lon)
	}
	if !got.IsGeocoded {
		t.Error("is_geocoded lost")
	}

	plain, _ := b.Events().Get("E1")
	plain.Latitude = nil
	plain.Longitude = nil
	plain.IsGeocoded = false
	if err := b.Events().Put(plain); err != nil {
		t.Fatalf("Put without coordinates: %v", err)
	}
	got, err = b.Events().Get("E1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Latitude != nil || got.Longitude != nil {
		t.Errorf("coordinates not cleared: %v %v", got.Latitude, got.Longitude)
	}
}
