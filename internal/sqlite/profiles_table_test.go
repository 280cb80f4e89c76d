// Tests for the profiles and participations accessors.
package sqlite

import (
	"testing"
	"time"

	"github.com/christianbiango/team-up/pkg/types"
)

func testProfile(id, userID string) *types.Profile {
	return &types.Profile{
		ID:               id,
		UserID:           userID,
		Username:         "chris",
		FullName:         "Chris B",
		FavoriteSports:   []string{"football", "tennis"},
		SkillLevel:       "intermediate",
		AvailabilityDays: []string{"saturday"},
		CreatedAt:        time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestProfiles_PutGetRoundTrip(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	profile := testProfile("PR1", "U1")
	if err := b.Profiles().Put(profile); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := b.Profiles().Get("PR1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Username != "chris" {
		t.Errorf("username = %q", got.Username)
	}
	if len(got.FavoriteSports) != 2 || got.FavoriteSports[0] != "football" {
		t.Errorf("favorite_sports = %v", got.FavoriteSports)
	}
	if len(got.AvailabilityDays) != 1 || got.AvailabilityDays[0] != "saturday" {
		t.Errorf("availability_days = %v", got.AvailabilityDays)
	}
}

func TestProfiles_GetByUser(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	if err := b.Profiles().Put(testProfile("PR1", "U1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := b.Profiles().Put(testProfile("PR2", "U2")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := b.Profiles().GetByUser("U2")
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if got.ID != "PR2" {
		t.Errorf("GetByUser returned %s, want PR2", got.ID)
	}

	if _, err := b.Profiles().GetByUser("U3"); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProfiles_EmptyListsRoundTripAsEmpty(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	profile := testProfile("PR1", "U1")
	profile.FavoriteSports = nil
	profile.AvailabilityDays = nil
	if err := b.Profiles().Put(profile); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := b.Profiles().Get("PR1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FavoriteSports == nil || len(got.FavoriteSports) != 0 {
		t.Errorf("favorite_sports = %#v, want empty slice", got.FavoriteSports)
	}
}

func TestParticipations_CRUDAndFilters(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Close()

	p1 := &types.Participation{ID: "P1", EventID: "E1", ParticipantID: "U1",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	p2 := &types.Participation{ID: "P2", EventID: "E1", ParticipantID: "U2",
		CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}
	p3 := &types.Participation{ID: "P3", EventID: "E2", ParticipantID: "U1",
		CreatedAt: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)}

	for _, p := range []*types.Participation{p1, p2, p3} {
		if err := b.Participations().Put(p); err != nil {
			t.Fatalf("Put %s: %v", p.ID, err)
		}
	}

	byEvent, err := b.Participations().List(types.ParticipationFilter{EventID: "E1"})
	if err != nil {
		t.Fatalf("List by event: %v", err)
	}
	if len(byEvent) != 2 {
		t.Errorf("by event: got %d, want 2", len(byEvent))
	}

	byBoth, err := b.Participations().List(types.ParticipationFilter{EventID: "E1", ParticipantID: "U2"})
	if err != nil {
		t.Fatalf("List by both: %v", err)
	}
	if len(byBoth) != 1 || byBoth[0].ID != "P2" {
		t.Errorf("by both: got %+v, want [P2]", byBoth)
	}

	// Pending delete hides the row from reads.
	p2.Meta.Pending(types.ActionDelete, 9)
	if err := b.Participations().Put(p2); err != nil {
		t.Fatalf("Put delete-marked: %v", err)
	}
	if _, err := b.Participations().Get("P2"); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound for delete-marked, got %v", err)
	}

	if err := b.Participations().Delete("P1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	remaining, err := b.Participations().List(types.ParticipationFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "P3" {
		t.Errorf("remaining = %+v, want [P3]", remaining)
	}
}
