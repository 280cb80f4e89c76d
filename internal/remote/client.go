// Package remote is the boundary to the backend store. The service is
// opaque: a collection-oriented upsert/delete/query API reached over a
// network call that can fail. All failures look the same to callers; the
// mutation manager and sync engine convert them into state transitions
// instead of propagating them.
package remote

import (
	"context"
	"time"
)

// Remote collection names. Participations map to a join-record collection;
// events and profiles map 1:1 to their own collections.
const (
	CollectionEvents       = "events"
	CollectionParticipants = "event_participants"
	CollectionProfiles     = "profiles"
)

// Query narrows and orders a collection read.
type Query struct {
	// Equals holds field = value filters.
	Equals map[string]string

	// DateTimeFrom, when non-zero, keeps records whose date_time is at or
	// after the given instant.
	DateTimeFrom time.Time

	// OrderBy names the field to sort by, ascending. Empty leaves the
	// order to the service.
	OrderBy string
}

// Client is the remote service boundary. record and result are JSON-coded;
// result may be nil when the caller does not need the response body.
type Client interface {
	// Insert creates a record and decodes the service's representation of
	// it into result.
	Insert(ctx context.Context, collection string, record, result any) error

	// Update upserts the record with the given ID and decodes the
	// service's representation into result.
	Update(ctx context.Context, collection, id string, record, result any) error

	// Delete removes the record with the given ID. Deleting an absent
	// record succeeds.
	Delete(ctx context.Context, collection, id string) error

	// Query decodes all matching records into result, which must be a
	// pointer to a slice.
	Query(ctx context.Context, collection string, query Query, result any) error
}
