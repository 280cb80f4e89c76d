package manager

import (
	"context"
	"sort"

	"github.com/christianbiango/team-up/internal/remote"
	"github.com/christianbiango/team-up/pkg/types"
)

// CreateEvent creates an event remotely when possible, otherwise stores it
// locally and queues it for sync. A missing ID is filled in before either
// path runs, so the record keeps the same identity once it reaches the
// remote service.
func (m *Manager) CreateEvent(ctx context.Context, event *types.Event) (*types.Event, error) {
	if event.ID == "" {
		event.ID = m.newID()
	}
	now := m.now()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	if event.Status == "" {
		event.Status = types.EventStatusOpen
	}

	if m.signal.IsOnline() {
		var confirmed types.Event
		err := m.remote.Insert(ctx, remote.CollectionEvents, event, &confirmed)
		if err == nil {
			confirmed.Meta.Confirm()
			if err := m.store.Events().Put(&confirmed); err != nil {
				return nil, err
			}
			return &confirmed, nil
		}
		m.log.Warn().Err(err).Str("event_id", event.ID).
			Msg("remote event create failed, falling back to offline path")
	}

	event.Meta.Pending(types.ActionCreate, m.nowMillis())
	if err := m.store.Events().Put(event); err != nil {
		return nil, err
	}
	item := types.NewEventQueueItem(types.ActionCreate, event.Clone(), event.Meta.Timestamp)
	if err := m.store.Queue().Enqueue(item); err != nil {
		return nil, err
	}
	m.notifier.Notify(notifySavedOffline())
	return event, nil
}

// UpdateEvent replaces an event's fields remotely when possible, otherwise
// stores the new snapshot locally and queues it.
func (m *Manager) UpdateEvent(ctx context.Context, event *types.Event) (*types.Event, error) {
	if event.ID == "" {
		return nil, types.ErrInvalidID
	}
	event.UpdatedAt = m.now()

	if m.signal.IsOnline() {
		var confirmed types.Event
		err := m.remote.Update(ctx, remote.CollectionEvents, event.ID, event, &confirmed)
		if err == nil {
			confirmed.Meta.Confirm()
			if err := m.store.Events().Put(&confirmed); err != nil {
				return nil, err
			}
			return &confirmed, nil
		}
		m.log.Warn().Err(err).Str("event_id", event.ID).
			Msg("remote event update failed, falling back to offline path")
	}

	event.Meta.Pending(types.ActionUpdate, m.nowMillis())
	if err := m.store.Events().Put(event); err != nil {
		return nil, err
	}
	item := types.NewEventQueueItem(types.ActionUpdate, event.Clone(), event.Meta.Timestamp)
	if err := m.store.Queue().Enqueue(item); err != nil {
		return nil, err
	}
	m.notifier.Notify(notifySavedOffline())
	return event, nil
}

// DeleteEvent removes an event remotely when possible. Offline, the local
// row is kept but marked for deletion, which hides it from reads until a
// sync pass confirms the remote removal.
func (m *Manager) DeleteEvent(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	if m.signal.IsOnline() {
		err := m.remote.Delete(ctx, remote.CollectionEvents, id)
		if err == nil {
			return m.store.Events().Delete(id)
		}
		m.log.Warn().Err(err).Str("event_id", id).
			Msg("remote event delete failed, falling back to offline path")
	}

	event, err := m.store.Events().Get(id)
	if err != nil {
		return err
	}
	event.Meta.Pending(types.ActionDelete, m.nowMillis())
	if err := m.store.Events().Put(event); err != nil {
		return err
	}
	item := types.NewEventQueueItem(types.ActionDelete, event.Clone(), event.Meta.Timestamp)
	if err := m.store.Queue().Enqueue(item); err != nil {
		return err
	}
	m.notifier.Notify(notifyDeletedOffline())
	return nil
}

// GetEvent reads a single event from the local store.
func (m *Manager) GetEvent(id string) (*types.Event, error) {
	return m.store.Events().Get(id)
}

// GetEvents is the merged read path. The local store always answers; when
// online, remote records win over same-ID local copies and are written back
// as confirmed, while local-only unconfirmed records survive the merge.
// A remote failure silently degrades to the local answer.
func (m *Manager) GetEvents(ctx context.Context, filter types.EventFilter) ([]*types.Event, error) {
	local, err := m.store.Events().List(filter)
	if err != nil {
		return nil, err
	}
	if !m.signal.IsOnline() {
		return local, nil
	}

	query := remote.Query{OrderBy: "date_time"}
	if filter.OrganizerID != "" {
		query.Equals = map[string]string{"organizer_id": filter.OrganizerID}
	}
	if filter.Upcoming {
		query.DateTimeFrom = m.now()
	}

	var remoteEvents []*types.Event
	if err := m.remote.Query(ctx, remote.CollectionEvents, query, &remoteEvents); err != nil {
		m.log.Debug().Err(err).Msg("remote event query failed, serving local data")
		return local, nil
	}

	merged := make([]*types.Event, 0, len(remoteEvents)+len(local))
	seen := make(map[string]bool, len(remoteEvents))
	for _, event := range remoteEvents {
		event.Meta.Confirm()
		if err := m.store.Events().Put(event); err != nil {
			return nil, err
		}
		seen[event.ID] = true
		merged = append(merged, event)
	}
	for _, event := range local {
		if event.Meta.Offline && !seen[event.ID] {
			merged = append(merged, event)
		}
	}
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].DateTime.Equal(merged[j].DateTime) {
			return merged[i].DateTime.Before(merged[j].DateTime)
		}
		return merged[i].ID < merged[j].ID
	})
	return merged, nil
}
