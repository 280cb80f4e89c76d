package types

import "errors"

// Store is the durable local store: the single source of truth for what the
// application reads, and the only writer of the sync queue. Callers open the
// store against a data directory, access tables through the typed accessors,
// and close when done.
type Store interface {
	// Open connects the store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyOpen if
	// called while already open.
	Open(config Config) error

	// Close releases backend resources. Idempotent: multiple calls succeed.
	// After Close, table operations return ErrStoreClosed.
	Close() error

	// Events returns the events table accessor.
	Events() EventTable

	// Participations returns the participations table accessor.
	Participations() ParticipationTable

	// Profiles returns the profiles table accessor.
	Profiles() ProfileTable

	// Queue returns the sync queue accessor.
	Queue() QueueTable

	// ClearAll removes every row from all four tables.
	ClearAll() error
}

// EventTable provides CRUD access to locally stored events.
// Records marked with ActionDelete are logically gone: Get reports them as
// not found and List excludes them, even though the row persists until a
// sync pass confirms the remote removal.
type EventTable interface {
	// Put creates or replaces the event with event.ID. Idempotent.
	Put(event *Event) error

	// Get retrieves an event by ID. Returns ErrNotFound if no event exists
	// with that ID or if the event is marked for deletion.
	Get(id string) (*Event, error)

	// List returns events matching the filter, ascending by date_time with
	// ties broken by ID.
	List(filter EventFilter) ([]*Event, error)

	// Delete removes the row outright. Used only for confirmed deletes;
	// offline deletes go through Put with ActionDelete instead.
	Delete(id string) error
}

// EventFilter narrows EventTable.List. Zero value matches every event.
type EventFilter struct {
	// OrganizerID, when non-empty, matches events with that organizer.
	OrganizerID string

	// Upcoming, when true, matches events whose date_time is at or after
	// the current time.
	Upcoming bool
}

// ParticipationTable provides CRUD access to locally stored participations.
type ParticipationTable interface {
	Put(participation *Participation) error
	Get(id string) (*Participation, error)
	List(filter ParticipationFilter) ([]*Participation, error)
	Delete(id string) error
}

// ParticipationFilter narrows ParticipationTable.List. Zero value matches
// every participation.
type ParticipationFilter struct {
	EventID       string
	ParticipantID string
}

// ProfileTable provides CRUD access to locally stored profiles.
// Profiles are never locally deleted; there is no delete operation.
type ProfileTable interface {
	Put(profile *Profile) error
	Get(id string) (*Profile, error)

	// GetByUser retrieves the profile owned by the given user.
	// Returns ErrNotFound if the user has no profile.
	GetByUser(userID string) (*Profile, error)
}

// QueueTable manages the pending-mutation queue.
type QueueTable interface {
	// Enqueue appends the item, or replaces an existing item with the same
	// ID. Replacement coalesces repeated offline edits into the latest
	// snapshot while keeping the original queue position.
	Enqueue(item *QueueItem) error

	// Dequeue removes the item with the given ID. Removing an absent item
	// is not an error.
	Dequeue(id string) error

	// BumpAttempts increments the attempt counter and returns the new
	// value. Returns ErrNotFound if the item is gone.
	BumpAttempts(id string) (int, error)

	// List returns all queued items in insertion order.
	List() ([]*QueueItem, error)

	// Len returns the number of queued items.
	Len() (int, error)
}

// Store lifecycle errors.
var (
	ErrStoreClosed  = errors.New("store is closed")
	ErrAlreadyOpen  = errors.New("store is already open")
	ErrTableUnknown = errors.New("unknown table")
)

// Table operation errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidID   = errors.New("invalid record ID")
	ErrInvalidData = errors.New("invalid record data")
)
