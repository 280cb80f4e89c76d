package manager

import (
	"context"
	"sort"

	"github.com/christianbiango/team-up/internal/remote"
	"github.com/christianbiango/team-up/pkg/types"
)

// JoinEvent records a participation. Every call produces a fresh
// participation ID; callers wanting at-most-one membership per user must
// check GetParticipations first.
func (m *Manager) JoinEvent(ctx context.Context, eventID, participantID string) (*types.Participation, error) {
	if eventID == "" || participantID == "" {
		return nil, types.ErrInvalidID
	}
	participation := &types.Participation{
		ID:            m.newID(),
		EventID:       eventID,
		ParticipantID: participantID,
		CreatedAt:     m.now(),
	}

	if m.signal.IsOnline() {
		var confirmed types.Participation
		err := m.remote.Insert(ctx, remote.CollectionParticipants, participation, &confirmed)
		if err == nil {
			confirmed.Meta.Confirm()
			if err := m.store.Participations().Put(&confirmed); err != nil {
				return nil, err
			}
			return &confirmed, nil
		}
		m.log.Warn().Err(err).Str("event_id", eventID).Str("participant_id", participantID).
			Msg("remote join failed, falling back to offline path")
	}

	participation.Meta.Pending(types.ActionCreate, m.nowMillis())
	if err := m.store.Participations().Put(participation); err != nil {
		return nil, err
	}
	item := types.NewParticipationQueueItem(types.ActionCreate, participation.Clone(), participation.Meta.Timestamp)
	if err := m.store.Queue().Enqueue(item); err != nil {
		return nil, err
	}
	m.notifier.Notify(notifyJoinedOffline())
	return participation, nil
}

// LeaveEvent cancels a participation by its ID.
func (m *Manager) LeaveEvent(ctx context.Context, participationID string) error {
	if participationID == "" {
		return types.ErrInvalidID
	}

	if m.signal.IsOnline() {
		err := m.remote.Delete(ctx, remote.CollectionParticipants, participationID)
		if err == nil {
			return m.store.Participations().Delete(participationID)
		}
		m.log.Warn().Err(err).Str("participation_id", participationID).
			Msg("remote leave failed, falling back to offline path")
	}

	participation, err := m.store.Participations().Get(participationID)
	if err != nil {
		return err
	}
	participation.Meta.Pending(types.ActionDelete, m.nowMillis())
	if err := m.store.Participations().Put(participation); err != nil {
		return err
	}
	item := types.NewParticipationQueueItem(types.ActionDelete, participation.Clone(), participation.Meta.Timestamp)
	if err := m.store.Queue().Enqueue(item); err != nil {
		return err
	}
	m.notifier.Notify(notifyLeftOffline())
	return nil
}

// GetParticipations merges local and remote participations the same way
// GetEvents merges events.
func (m *Manager) GetParticipations(ctx context.Context, filter types.ParticipationFilter) ([]*types.Participation, error) {
	local, err := m.store.Participations().List(filter)
	if err != nil {
		return nil, err
	}
	if !m.signal.IsOnline() {
		return local, nil
	}

	query := remote.Query{OrderBy: "created_at"}
	equals := make(map[string]string)
	if filter.EventID != "" {
		equals["event_id"] = filter.EventID
	}
	if filter.ParticipantID != "" {
		equals["participant_id"] = filter.ParticipantID
	}
	if len(equals) > 0 {
		query.Equals = equals
	}

	var remoteParticipations []*types.Participation
	if err := m.remote.Query(ctx, remote.CollectionParticipants, query, &remoteParticipations); err != nil {
		m.log.Debug().Err(err).Msg("remote participation query failed, serving local data")
		return local, nil
	}

	merged := make([]*types.Participation, 0, len(remoteParticipations)+len(local))
	seen := make(map[string]bool, len(remoteParticipations))
	for _, participation := range remoteParticipations {
		participation.Meta.Confirm()
		if err := m.store.Participations().Put(participation); err != nil {
			return nil, err
		}
		seen[participation.ID] = true
		merged = append(merged, participation)
	}
	for _, participation := range local {
		if participation.Meta.Offline && !seen[participation.ID] {
			merged = append(merged, participation)
		}
	}
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.Before(merged[j].CreatedAt)
		}
		return merged[i].ID < merged[j].ID
	})
	return merged, nil
}
