// Events table accessor. Rows marked with a pending delete stay in the
// table until a sync pass confirms the remote removal, but every read path
// here excludes them.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/christianbiango/team-up/pkg/types"
)

// Compile-time interface check: eventsTable must implement EventTable.
var _ types.EventTable = (*eventsTable)(nil)

type eventsTable struct {
	backend *Backend
}

const eventColumns = `id, title, description, sport_type, skill_level, date_time,
	duration, max_participants, current_participants, price_per_person,
	venue_address, organizer_id, status, latitude, longitude, is_geocoded,
	created_at, updated_at, offline, action, local_timestamp`

// Put creates or replaces the event with event.ID. Idempotent: applying the
// same snapshot twice leaves the table unchanged.
func (et *eventsTable) Put(event *types.Event) error {
	if event == nil {
		return types.ErrInvalidData
	}
	if event.ID == "" {
		return types.ErrInvalidID
	}

	db, err := et.backend.handle()
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			sport_type = excluded.sport_type,
			skill_level = excluded.skill_level,
			date_time = excluded.date_time,
			duration = excluded.duration,
			max_participants = excluded.max_participants,
			current_participants = excluded.current_participants,
			price_per_person = excluded.price_per_person,
			venue_address = excluded.venue_address,
			organizer_id = excluded.organizer_id,
			status = excluded.status,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			is_geocoded = excluded.is_geocoded,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			offline = excluded.offline,
			action = excluded.action,
			local_timestamp = excluded.local_timestamp`,
		event.ID, event.Title, event.Description, event.SportType,
		event.SkillLevel, formatTime(event.DateTime), event.Duration,
		event.MaxParticipants, event.CurrentParticipants, event.PricePerPerson,
		event.VenueAddress, event.OrganizerID, event.Status,
		event.Latitude, event.Longitude, boolToInt(event.IsGeocoded),
		formatTime(event.CreatedAt), formatTime(event.UpdatedAt),
		boolToInt(event.Meta.Offline), string(event.Meta.Action), event.Meta.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("putting event %s: %w", event.ID, err)
	}
	return nil
}

// Get retrieves an event by ID. Events pending deletion are reported as
// not found.
func (et *eventsTable) Get(id string) (*types.Event, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	db, err := et.backend.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT "+eventColumns+" FROM events WHERE id = ? AND action != ?",
		id, string(types.ActionDelete),
	)
	event, err := hydrateEvent(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting event %s: %w", id, err)
	}
	return event, nil
}

// List returns events matching the filter, ascending by date_time with ties
// broken by ID so the ordering is deterministic.
func (et *eventsTable) List(filter types.EventFilter) ([]*types.Event, error) {
	db, err := et.backend.handle()
	if err != nil {
		return nil, err
	}

	conditions := []string{"action != ?"}
	args := []any{string(types.ActionDelete)}

	if filter.OrganizerID != "" {
		conditions = append(conditions, "organizer_id = ?")
		args = append(args, filter.OrganizerID)
	}
	if filter.Upcoming {
		conditions = append(conditions, "date_time >= ?")
		args = append(args, formatTime(time.Now()))
	}

	query := "SELECT " + eventColumns + " FROM events WHERE " +
		strings.Join(conditions, " AND ") +
		" ORDER BY date_time ASC, id ASC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	events := []*types.Event{}
	for rows.Next() {
		event, err := hydrateEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

// Delete removes the row outright. Offline deletes mark the row via Put
// instead; this path is for confirmed removals only.
func (et *eventsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	db, err := et.backend.handle()
	if err != nil {
		return err
	}

	if _, err := db.Exec("DELETE FROM events WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting event %s: %w", id, err)
	}
	return nil
}

// hydrateEvent converts one row into a *types.Event. scan is row.Scan or
// rows.Scan, so point lookups and listings share the column mapping.
func hydrateEvent(scan func(dest ...any) error) (*types.Event, error) {
	var e types.Event
	var dateTime, createdAt, updatedAt, action string
	var isGeocoded, offline int
	err := scan(
		&e.ID, &e.Title, &e.Description, &e.SportType, &e.SkillLevel,
		&dateTime, &e.Duration, &e.MaxParticipants, &e.CurrentParticipants,
		&e.PricePerPerson, &e.VenueAddress, &e.OrganizerID, &e.Status,
		&e.Latitude, &e.Longitude, &isGeocoded,
		&createdAt, &updatedAt, &offline, &action, &e.Meta.Timestamp,
	)
	if err != nil {
		return nil, err
	}

	if e.DateTime, err = parseTime(dateTime); err != nil {
		return nil, fmt.Errorf("parsing date_time: %w", err)
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	e.IsGeocoded = isGeocoded != 0
	e.Meta.Offline = offline != 0
	e.Meta.Action = types.Action(action)
	return &e, nil
}
