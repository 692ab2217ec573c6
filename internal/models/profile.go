package models

import "time"

// Profile holds the single doctor's public display details. One row
// per user, created lazily the first time the admin profile page
// loads.
type Profile struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	Specialty  string    `json:"specialty"`
	ClinicName string    `json:"clinic_name"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	Bio        string    `json:"bio"`
	AvatarURL  *string   `json:"avatar_url"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CompletionFields returns the display fields counted toward the
// dashboard's profile-completion percentage.
func (p *Profile) CompletionFields() []bool {
	avatar := p.AvatarURL != nil && *p.AvatarURL != ""
	return []bool{
		p.FullName != "",
		p.Specialty != "",
		p.ClinicName != "",
		p.Phone != "",
		p.Address != "",
		avatar,
	}
}

// ProfileInput is the editable subset of Profile submitted by the
// admin panel. The avatar URL is managed by the upload flow, not here.
type ProfileInput struct {
	FullName   string `json:"full_name"`
	Specialty  string `json:"specialty"`
	ClinicName string `json:"clinic_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Bio        string `json:"bio"`
}
