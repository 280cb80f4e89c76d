// Profiles table accessor. Profiles are never locally deleted, so there is
// no delete path and no pending-delete exclusion.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/christianbiango/team-up/pkg/types"
)

// Compile-time interface check: profilesTable must implement ProfileTable.
var _ types.ProfileTable = (*profilesTable)(nil)

type profilesTable struct {
	backend *Backend
}

const profileColumns = `id, user_id, username, full_name, bio, avatar_url,
	phone, favorite_sports, skill_level, availability_days, location,
	created_at, updated_at, offline, action, local_timestamp`

// Put creates or replaces the profile with profile.ID.
func (pt *profilesTable) Put(profile *types.Profile) error {
	if profile == nil {
		return types.ErrInvalidData
	}
	if profile.ID == "" {
		return types.ErrInvalidID
	}

	db, err := pt.backend.handle()
	if err != nil {
		return err
	}

	sports, err := marshalStringList(profile.FavoriteSports)
	if err != nil {
		return err
	}
	days, err := marshalStringList(profile.AvailabilityDays)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			username = excluded.username,
			full_name = excluded.full_name,
			bio = excluded.bio,
			avatar_url = excluded.avatar_url,
			phone = excluded.phone,
			favorite_sports = excluded.favorite_sports,
			skill_level = excluded.skill_level,
			availability_days = excluded.availability_days,
			location = excluded.location,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			offline = excluded.offline,
			action = excluded.action,
			local_timestamp = excluded.local_timestamp`,
		profile.ID, profile.UserID, profile.Username, profile.FullName,
		profile.Bio, profile.AvatarURL, profile.Phone, sports,
		profile.SkillLevel, days, profile.Location,
		formatTime(profile.CreatedAt), formatTime(profile.UpdatedAt),
		boolToInt(profile.Meta.Offline), string(profile.Meta.Action),
		profile.Meta.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("putting profile %s: %w", profile.ID, err)
	}
	return nil
}

// Get retrieves a profile by ID.
func (pt *profilesTable) Get(id string) (*types.Profile, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	db, err := pt.backend.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT "+profileColumns+" FROM profiles WHERE id = ?", id)
	profile, err := hydrateProfile(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting profile %s: %w", id, err)
	}
	return profile, nil
}

// GetByUser retrieves the profile owned by the given user.
func (pt *profilesTable) GetByUser(userID string) (*types.Profile, error) {
	if userID == "" {
		return nil, types.ErrInvalidID
	}

	db, err := pt.backend.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT "+profileColumns+" FROM profiles WHERE user_id = ?", userID)
	profile, err := hydrateProfile(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting profile for user %s: %w", userID, err)
	}
	return profile, nil
}

func hydrateProfile(scan func(dest ...any) error) (*types.Profile, error) {
	var p types.Profile
	var sports, days, createdAt, updatedAt, action string
	var offline int
	err := scan(
		&p.ID, &p.UserID, &p.Username, &p.FullName, &p.Bio, &p.AvatarURL,
		&p.Phone, &sports, &p.SkillLevel, &days, &p.Location,
		&createdAt, &updatedAt, &offline, &action, &p.Meta.Timestamp,
	)
	if err != nil {
		return nil, err
	}

	if p.FavoriteSports, err = unmarshalStringList(sports); err != nil {
		return nil, err
	}
	if p.AvailabilityDays, err = unmarshalStringList(days); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	p.Meta.Offline = offline != 0
	p.Meta.Action = types.Action(action)
	return &p, nil
}
