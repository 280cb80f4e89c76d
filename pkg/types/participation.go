package types

import "time"

// Participation links an event to a participant. One row per join; the
// application generates a fresh ID for every join call.
type Participation struct {
	ID            string    `json:"id"`
	EventID       string    `json:"event_id"`
	ParticipantID string    `json:"participant_id"`
	CreatedAt     time.Time `json:"created_at"`

	Meta Meta `json:"-"`
}

// Clone returns a copy of the participation.
func (p *Participation) Clone() *Participation {
	cp := *p
	return &cp
}
