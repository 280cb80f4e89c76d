// Sync queue accessor. Queue items are keyed by table_action_id, so a
// repeated offline edit replaces the snapshot in place instead of adding a
// second item. The position column preserves first-insertion order across
// those replacements.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/christianbiango/team-up/pkg/types"
)

// Compile-time interface check: queueTable must implement QueueTable.
var _ types.QueueTable = (*queueTable)(nil)

type queueTable struct {
	backend *Backend
}

// Enqueue appends the item, or coalesces into an existing item with the
// same ID. Replacement keeps the original position and resets the snapshot,
// timestamp, and attempt counter to the new item's values.
func (qt *queueTable) Enqueue(item *types.QueueItem) error {
	if item == nil {
		return types.ErrInvalidData
	}
	if err := item.Validate(); err != nil {
		return err
	}

	db, err := qt.backend.handle()
	if err != nil {
		return err
	}

	data, err := marshalQueueData(item)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO sync_queue (id, table_name, action, data, timestamp, attempts, position)
		VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM sync_queue))
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			timestamp = excluded.timestamp,
			attempts = excluded.attempts`,
		item.ID, item.Table, string(item.Action), data, item.Timestamp, item.Attempts,
	)
	if err != nil {
		return fmt.Errorf("enqueuing %s: %w", item.ID, err)
	}
	return nil
}

// Dequeue removes the item with the given ID. Absent items are ignored.
func (qt *queueTable) Dequeue(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	db, err := qt.backend.handle()
	if err != nil {
		return err
	}

	if _, err := db.Exec("DELETE FROM sync_queue WHERE id = ?", id); err != nil {
		return fmt.Errorf("dequeuing %s: %w", id, err)
	}
	return nil
}

// BumpAttempts increments the attempt counter and returns the new value.
func (qt *queueTable) BumpAttempts(id string) (int, error) {
	if id == "" {
		return 0, types.ErrInvalidID
	}

	db, err := qt.backend.handle()
	if err != nil {
		return 0, err
	}

	if _, err := db.Exec("UPDATE sync_queue SET attempts = attempts + 1 WHERE id = ?", id); err != nil {
		return 0, fmt.Errorf("bumping attempts for %s: %w", id, err)
	}

	var attempts int
	err = db.QueryRow("SELECT attempts FROM sync_queue WHERE id = ?", id).Scan(&attempts)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, types.ErrNotFound
		}
		return 0, fmt.Errorf("reading attempts for %s: %w", id, err)
	}
	return attempts, nil
}

// List returns all queued items in insertion order.
func (qt *queueTable) List() ([]*types.QueueItem, error) {
	db, err := qt.backend.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT id, table_name, action, data, timestamp, attempts, position
		FROM sync_queue ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing queue: %w", err)
	}
	defer rows.Close()

	items := []*types.QueueItem{}
	for rows.Next() {
		var item types.QueueItem
		var action, data string
		if err := rows.Scan(&item.ID, &item.Table, &action, &data,
			&item.Timestamp, &item.Attempts, &item.Position); err != nil {
			return nil, fmt.Errorf("scanning queue item: %w", err)
		}
		item.Action = types.Action(action)
		if err := unmarshalQueueData(&item, data); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating queue: %w", err)
	}
	return items, nil
}

// Len returns the number of queued items.
func (qt *queueTable) Len() (int, error) {
	db, err := qt.backend.handle()
	if err != nil {
		return 0, err
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sync_queue").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting queue: %w", err)
	}
	return n, nil
}

// marshalQueueData serializes the item's record snapshot, narrowed by the
// table discriminant.
func marshalQueueData(item *types.QueueItem) (string, error) {
	var snapshot any
	switch item.Table {
	case types.TableEvents:
		snapshot = item.Event
	case types.TableParticipations:
		snapshot = item.Participation
	case types.TableProfiles:
		snapshot = item.Profile
	default:
		return "", types.ErrInvalidTable
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshaling queue data for %s: %w", item.ID, err)
	}
	return string(data), nil
}

// unmarshalQueueData hydrates the record snapshot into the variant matching
// the table discriminant.
func unmarshalQueueData(item *types.QueueItem, data string) error {
	switch item.Table {
	case types.TableEvents:
		item.Event = &types.Event{}
		if err := json.Unmarshal([]byte(data), item.Event); err != nil {
			return fmt.Errorf("parsing event snapshot for %s: %w", item.ID, err)
		}
	case types.TableParticipations:
		item.Participation = &types.Participation{}
		if err := json.Unmarshal([]byte(data), item.Participation); err != nil {
			return fmt.Errorf("parsing participation snapshot for %s: %w", item.ID, err)
		}
	case types.TableProfiles:
		item.Profile = &types.Profile{}
		if err := json.Unmarshal([]byte(data), item.Profile); err != nil {
			return fmt.Errorf("parsing profile snapshot for %s: %w", item.ID, err)
		}
	default:
		return types.ErrInvalidTable
	}
	return nil
}
