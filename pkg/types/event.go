package types

import "time"

// Event statuses.
const (
	EventStatusOpen      = "open"
	EventStatusClosed    = "closed"
	EventStatusCancelled = "cancelled"
)

// validEventStatuses is the set of recognized event status values.
var validEventStatuses = map[string]bool{
	EventStatusOpen:      true,
	EventStatusClosed:    true,
	EventStatusCancelled: true,
}

// ValidEventStatus reports whether status is a recognized event status.
func ValidEventStatus(status string) bool {
	return validEventStatuses[status]
}

// Event represents a sports event organized by a user.
type Event struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	SportType           string    `json:"sport_type"`
	SkillLevel          string    `json:"skill_level"`
	DateTime            time.Time `json:"date_time"`
	Duration            int       `json:"duration"` // minutes
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	PricePerPerson      float64   `json:"price_per_person"`
	VenueAddress        string    `json:"venue_address"`
	OrganizerID         string    `json:"organizer_id"`
	Status              string    `json:"status"`
	Latitude            *float64  `json:"latitude,omitempty"`
	Longitude           *float64  `json:"longitude,omitempty"`
	IsGeocoded          bool      `json:"is_geocoded,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	Meta Meta `json:"-"`
}

// Clone returns a deep copy of the event.
func (e *Event) Clone() *Event {
	cp := *e
	if e.Latitude != nil {
		lat := *e.Latitude
		cp.Latitude = &lat
	}
	if e.Longitude != nil {
		lon := *e.Longitude
		cp.Longitude = &lon
	}
	return &cp
}
