// Participations table accessor.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/christianbiango/team-up/pkg/types"
)

// Compile-time interface check: participationsTable must implement
// ParticipationTable.
var _ types.ParticipationTable = (*participationsTable)(nil)

type participationsTable struct {
	backend *Backend
}

const participationColumns = `id, event_id, participant_id, created_at,
	offline, action, local_timestamp`

// Put creates or replaces the participation with participation.ID.
func (pt *participationsTable) Put(participation *types.Participation) error {
	if participation == nil {
		return types.ErrInvalidData
	}
	if participation.ID == "" {
		return types.ErrInvalidID
	}

	db, err := pt.backend.handle()
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO participations (`+participationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			event_id = excluded.event_id,
			participant_id = excluded.participant_id,
			created_at = excluded.created_at,
			offline = excluded.offline,
			action = excluded.action,
			local_timestamp = excluded.local_timestamp`,
		participation.ID, participation.EventID, participation.ParticipantID,
		formatTime(participation.CreatedAt),
		boolToInt(participation.Meta.Offline), string(participation.Meta.Action),
		participation.Meta.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("putting participation %s: %w", participation.ID, err)
	}
	return nil
}

// Get retrieves a participation by ID. Rows pending deletion are reported
// as not found.
func (pt *participationsTable) Get(id string) (*types.Participation, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	db, err := pt.backend.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT "+participationColumns+" FROM participations WHERE id = ? AND action != ?",
		id, string(types.ActionDelete),
	)
	participation, err := hydrateParticipation(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting participation %s: %w", id, err)
	}
	return participation, nil
}

// List returns participations matching the filter, ordered by creation time
// with ties broken by ID.
func (pt *participationsTable) List(filter types.ParticipationFilter) ([]*types.Participation, error) {
	db, err := pt.backend.handle()
	if err != nil {
		return nil, err
	}

	conditions := []string{"action != ?"}
	args := []any{string(types.ActionDelete)}

	if filter.EventID != "" {
		conditions = append(conditions, "event_id = ?")
		args = append(args, filter.EventID)
	}
	if filter.ParticipantID != "" {
		conditions = append(conditions, "participant_id = ?")
		args = append(args, filter.ParticipantID)
	}

	query := "SELECT " + participationColumns + " FROM participations WHERE " +
		strings.Join(conditions, " AND ") +
		" ORDER BY created_at ASC, id ASC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing participations: %w", err)
	}
	defer rows.Close()

	participations := []*types.Participation{}
	for rows.Next() {
		participation, err := hydrateParticipation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating participation: %w", err)
		}
		participations = append(participations, participation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating participations: %w", err)
	}
	return participations, nil
}

// Delete removes the row outright. Used only for confirmed removals.
func (pt *participationsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	db, err := pt.backend.handle()
	if err != nil {
		return err
	}

	if _, err := db.Exec("DELETE FROM participations WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting participation %s: %w", id, err)
	}
	return nil
}

func hydrateParticipation(scan func(dest ...any) error) (*types.Participation, error) {
	var p types.Participation
	var createdAt, action string
	var offline int
	err := scan(
		&p.ID, &p.EventID, &p.ParticipantID, &createdAt,
		&offline, &action, &p.Meta.Timestamp,
	)
	if err != nil {
		return nil, err
	}

	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	p.Meta.Offline = offline != 0
	p.Meta.Action = types.Action(action)
	return &p, nil
}
