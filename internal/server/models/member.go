package models

import "time"

// Member is the full member record. The auth service reads the embedded
// User projection plus PasswordHash; the directory service works with the
// whole record. Both views resolve to the same identity-keyed row.
type Member struct {
	User

	// PasswordHash is a bcrypt hash. Never serialized.
	PasswordHash string `json:"-"`

	Phone             string    `json:"phone,omitempty"`
	Address           string    `json:"address,omitempty"`
	JoinDate          time.Time `json:"joinDate"`
	LastActive        time.Time `json:"lastActive"`
	DocumentsUploaded bool      `json:"documentsUploaded"`
	Verified          bool      `json:"verified"`
	Notes             string    `json:"notes,omitempty"`
}

// MemberUpdate carries a partial update. Nil fields are left untouched.
type MemberUpdate struct {
	Name              *string    `json:"name,omitempty"`
	Role              *Role      `json:"role,omitempty"`
	IsActive          *bool      `json:"isActive,omitempty"`
	ProfileComplete   *bool      `json:"profileComplete,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
	Address           *string    `json:"address,omitempty"`
	LastActive        *time.Time `json:"lastActive,omitempty"`
	DocumentsUploaded *bool      `json:"documentsUploaded,omitempty"`
	Verified          *bool      `json:"verified,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

// Apply merges the update into m.
func (u MemberUpdate) Apply(m *Member) {
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Role != nil {
		m.Role = *u.Role
	}
	if u.IsActive != nil {
		m.IsActive = *u.IsActive
	}
	if u.ProfileComplete != nil {
		m.ProfileComplete = *u.ProfileComplete
	}
	if u.Phone != nil {
		m.Phone = *u.Phone
	}
	if u.Address != nil {
		m.Address = *u.Address
	}
	if u.LastActive != nil {
		m.LastActive = *u.LastActive
	}
	if u.DocumentsUploaded != nil {
		m.DocumentsUploaded = *u.DocumentsUploaded
	}
	if u.Verified != nil {
		m.Verified = *u.Verified
	}
	if u.Notes != nil {
		m.Notes = *u.Notes
	}
}

// MemberStats holds derived counts over the member store. Recomputed on
// every request, never cached.
type MemberStats struct {
	Total             int `json:"total"`
	Active            int `json:"active"`
	Inactive          int `json:"inactive"`
	Verified          int `json:"verified"`
	Unverified        int `json:"unverified"`
	ProfileComplete   int `json:"profileComplete"`
	ProfileIncomplete int `json:"profileIncomplete"`
}
