package types

import (
	"errors"
	"fmt"
)

// Record table names. These double as remote collection discriminants for
// the sync queue.
const (
	TableEvents         = "events"
	TableParticipations = "participations"
	TableProfiles       = "profiles"
	TableQueue          = "sync_queue"
)

// RecordTableNames lists the tables whose mutations flow through the queue.
var RecordTableNames = []string{
	TableEvents,
	TableParticipations,
	TableProfiles,
}

// Queue validation errors.
var (
	ErrInvalidTable  = errors.New("invalid queue table")
	ErrInvalidAction = errors.New("invalid action for table")
	ErrMissingRecord = errors.New("queue item missing record snapshot")
)

// QueueItem is one outstanding remote-side effect. Its ID is derived from
// table, action, and record ID, so repeated offline edits to the same record
// replace the same slot instead of duplicating it.
//
// Exactly one of Event, Participation, or Profile is set, discriminated by
// Table. Delete items carry a snapshot too; only its ID is used.
type QueueItem struct {
	ID        string `json:"id"`
	Table     string `json:"table"`
	Action    Action `json:"action"`
	Timestamp int64  `json:"timestamp"`
	Attempts  int    `json:"attempts"`

	// Position is the insertion-order rank assigned on first enqueue and
	// preserved across coalescing replacements. Managed by the store.
	Position int64 `json:"-"`

	Event         *Event         `json:"event,omitempty"`
	Participation *Participation `json:"participation,omitempty"`
	Profile       *Profile       `json:"profile,omitempty"`
}

// QueueItemID derives the deterministic queue key for a mutation.
func QueueItemID(table string, action Action, recordID string) string {
	return fmt.Sprintf("%s_%s_%s", table, action, recordID)
}

// NewEventQueueItem builds a queue item for an event mutation.
func NewEventQueueItem(action Action, event *Event, timestampMillis int64) *QueueItem {
	return &QueueItem{
		ID:        QueueItemID(TableEvents, action, event.ID),
		Table:     TableEvents,
		Action:    action,
		Timestamp: timestampMillis,
		Event:     event,
	}
}

// NewParticipationQueueItem builds a queue item for a participation mutation.
func NewParticipationQueueItem(action Action, participation *Participation, timestampMillis int64) *QueueItem {
	return &QueueItem{
		ID:            QueueItemID(TableParticipations, action, participation.ID),
		Table:         TableParticipations,
		Action:        action,
		Timestamp:     timestampMillis,
		Participation: participation,
	}
}

// NewProfileQueueItem builds a queue item for a profile mutation.
func NewProfileQueueItem(action Action, profile *Profile, timestampMillis int64) *QueueItem {
	return &QueueItem{
		ID:        QueueItemID(TableProfiles, action, profile.ID),
		Table:     TableProfiles,
		Action:    action,
		Timestamp: timestampMillis,
		Profile:   profile,
	}
}

// Record returns the record snapshot as an untyped value, ready for
// encoding. Returns nil when the snapshot for the item's table is absent.
func (q *QueueItem) Record() any {
	switch q.Table {
	case TableEvents:
		if q.Event != nil {
			return q.Event
		}
	case TableParticipations:
		if q.Participation != nil {
			return q.Participation
		}
	case TableProfiles:
		if q.Profile != nil {
			return q.Profile
		}
	}
	return nil
}

// RecordID returns the ID of the record this item mutates.
func (q *QueueItem) RecordID() string {
	switch q.Table {
	case TableEvents:
		if q.Event != nil {
			return q.Event.ID
		}
	case TableParticipations:
		if q.Participation != nil {
			return q.Participation.ID
		}
	case TableProfiles:
		if q.Profile != nil {
			return q.Profile.ID
		}
	}
	return ""
}

// Validate checks the table discriminant, the per-table action restriction
// (participations never update, profiles never delete), and that the
// matching record snapshot is present.
func (q *QueueItem) Validate() error {
	var allowed map[Action]bool
	var record bool

	switch q.Table {
	case TableEvents:
		allowed = map[Action]bool{ActionCreate: true, ActionUpdate: true, ActionDelete: true}
		record = q.Event != nil
	case TableParticipations:
		allowed = map[Action]bool{ActionCreate: true, ActionDelete: true}
		record = q.Participation != nil
	case TableProfiles:
		allowed = map[Action]bool{ActionCreate: true, ActionUpdate: true}
		record = q.Profile != nil
	default:
		return ErrInvalidTable
	}

	if !allowed[q.Action] {
		return fmt.Errorf("%w: %s %s", ErrInvalidAction, q.Table, q.Action)
	}
	if !record {
		return ErrMissingRecord
	}
	return nil
}
