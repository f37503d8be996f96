package domain

import "strings"

// Role represents an account role in the system.
// The set is closed: every place that deals with roles (credential check,
// token claims, route matrix) shares this type so the role strings cannot
// drift apart.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleMinister     Role = "MINISTER"
	RolePA           Role = "PA"
	RoleBackOfficer  Role = "BACK_OFFICER"
	RoleFieldOfficer Role = "FIELD_OFFICER"
	RoleCitizen      Role = "CITIZEN"
)

// AllRoles lists every valid role. Used by the route matrix for
// "any authenticated account" entries and by seeders.
var AllRoles = []Role{
	RoleAdmin,
	RoleMinister,
	RolePA,
	RoleBackOfficer,
	RoleFieldOfficer,
	RoleCitizen,
}

// ParseRole converts a raw string into a Role, normalizing case and
// whitespace. Returns false for anything outside the closed set.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllRoles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// IsValid reports whether the role belongs to the closed set exactly
// (no normalization: a token claim must carry the canonical spelling).
func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// IsOfficer reports whether the role is one of the officer roles that
// handle grievances (back office or field).
func (r Role) IsOfficer() bool {
	return r == RoleBackOfficer || r == RoleFieldOfficer
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}
