package manager

import (
	"context"

	"github.com/christianbiango/team-up/internal/remote"
	"github.com/christianbiango/team-up/pkg/types"
)

// SaveProfile creates or updates a profile. A profile without an ID is a
// creation; one with an ID is a full replacement. Profiles are never
// deleted, so those are the only two paths.
func (m *Manager) SaveProfile(ctx context.Context, profile *types.Profile) (*types.Profile, error) {
	if profile.UserID == "" {
		return nil, types.ErrInvalidID
	}

	action := types.ActionUpdate
	if profile.ID == "" {
		profile.ID = m.newID()
		action = types.ActionCreate
	}
	now := m.now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	if m.signal.IsOnline() {
		var confirmed types.Profile
		var err error
		if action == types.ActionCreate {
			err = m.remote.Insert(ctx, remote.CollectionProfiles, profile, &confirmed)
		} else {
			err = m.remote.Update(ctx, remote.CollectionProfiles, profile.ID, profile, &confirmed)
		}
		if err == nil {
			confirmed.Meta.Confirm()
			if err := m.store.Profiles().Put(&confirmed); err != nil {
				return nil, err
			}
			return &confirmed, nil
		}
		m.log.Warn().Err(err).Str("profile_id", profile.ID).Str("action", string(action)).
			Msg("remote profile save failed, falling back to offline path")
	}

	profile.Meta.Pending(action, m.nowMillis())
	if err := m.store.Profiles().Put(profile); err != nil {
		return nil, err
	}
	item := types.NewProfileQueueItem(action, profile.Clone(), profile.Meta.Timestamp)
	if err := m.store.Queue().Enqueue(item); err != nil {
		return nil, err
	}
	m.notifier.Notify(notifySavedOffline())
	return profile, nil
}

// UpdateProfile replaces an existing profile. Unlike SaveProfile it never
// creates one: the profile must already carry its ID.
func (m *Manager) UpdateProfile(ctx context.Context, profile *types.Profile) (*types.Profile, error) {
	if profile.ID == "" {
		return nil, types.ErrInvalidID
	}
	return m.SaveProfile(ctx, profile)
}

// GetProfile reads a user's profile, preferring the remote copy when
// online. A remote failure or an absent remote profile falls back to the
// local copy.
func (m *Manager) GetProfile(ctx context.Context, userID string) (*types.Profile, error) {
	if userID == "" {
		return nil, types.ErrInvalidID
	}

	if m.signal.IsOnline() {
		var remoteProfiles []*types.Profile
		query := remote.Query{Equals: map[string]string{"user_id": userID}}
		err := m.remote.Query(ctx, remote.CollectionProfiles, query, &remoteProfiles)
		if err != nil {
			m.log.Debug().Err(err).Str("user_id", userID).
				Msg("remote profile query failed, serving local data")
		} else if len(remoteProfiles) > 0 {
			profile := remoteProfiles[0]
			profile.Meta.Confirm()
			if err := m.store.Profiles().Put(profile); err != nil {
				return nil, err
			}
			return profile, nil
		}
	}

	return m.store.Profiles().GetByUser(userID)
}
