package types

import "time"

// Profile is a user-owned record with identity and preference fields.
// Profiles are created and updated but never locally deleted.
type Profile struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Username         string    `json:"username"`
	FullName         string    `json:"full_name"`
	Bio              string    `json:"bio,omitempty"`
	AvatarURL        string    `json:"avatar_url,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	FavoriteSports   []string  `json:"favorite_sports"`
	SkillLevel       string    `json:"skill_level"`
	AvailabilityDays []string  `json:"availability_days"`
	Location         string    `json:"location,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`

	Meta Meta `json:"-"`
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.FavoriteSports = append([]string(nil), p.FavoriteSports...)
	cp.AvailabilityDays = append([]string(nil), p.AvailabilityDays...)
	return &cp
}
