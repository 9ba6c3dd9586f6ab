// Package models defines the server-side data model: member records with
// their two projections (authentication and admin directory), stored file
// descriptors and refresh tokens.
package models

import "time"

// Role is an explicit, totally ordered privilege level.
type Role string

const (
	RoleGuest  Role = "guest"
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	RoleMaster Role = "master"
)

// roleRanks makes the privilege order machine-checkable:
// guest(0) < member(1) < admin(2) < master(3).
var roleRanks = map[Role]int{
	RoleGuest:  0,
	RoleMember: 1,
	RoleAdmin:  2,
	RoleMaster: 3,
}

// Rank returns the numeric privilege rank. Unknown roles report ok=false
// and rank below every valid role.
func (r Role) Rank() (int, bool) {
	rank, ok := roleRanks[r]
	if !ok {
		return -1, false
	}
	return rank, true
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// User is the authentication projection of a member record.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Role            Role      `json:"role"`
	CreatedAt       time.Time `json:"createdAt"`
	IsActive        bool      `json:"isActive"`
	ProfileComplete bool      `json:"profileComplete"`
}

// HasRole reports whether u satisfies the required privilege level.
// A nil user never satisfies any requirement, including RoleGuest.
func HasRole(u *User, required Role) bool {
	if u == nil {
		return false
	}
	userRank, ok := u.Role.Rank()
	if !ok {
		return false
	}
	requiredRank, ok := required.Rank()
	if !ok {
		return false
	}
	return userRank >= requiredRank
}
