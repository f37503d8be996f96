package middleware

import (
	"strings"

	"github.com/TeemXTech/Grievance-sub002/internal/core/domain"
)

// RouteMatrix is the static mapping from URL path prefixes to the roles
// permitted to access them. Lookup uses the longest matching prefix.
//
// Matching is deny-by-default: a path that is neither public nor covered by
// an entry is rejected outright, so a new route added without a matrix entry
// fails loudly instead of silently accepting any authenticated identity.
type RouteMatrix struct {
	public  []string
	entries []matrixEntry
}

type matrixEntry struct {
	prefix string
	roles  map[domain.Role]struct{}
}

// NewRouteMatrix creates an empty matrix
func NewRouteMatrix() *RouteMatrix {
	return &RouteMatrix{}
}

// Public marks path prefixes that bypass the gate entirely.
// "/" is treated as an exact match, not a prefix.
func (m *RouteMatrix) Public(prefixes ...string) *RouteMatrix {
	m.public = append(m.public, prefixes...)
	return m
}

// Allow grants the given roles access to a path prefix.
// An entry with no roles would reject every request; it is dropped.
func (m *RouteMatrix) Allow(prefix string, roles ...domain.Role) *RouteMatrix {
	if len(roles) == 0 {
		return m
	}
	set := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	m.entries = append(m.entries, matrixEntry{prefix: prefix, roles: set})
	return m
}

// IsPublic reports whether the path bypasses authentication
func (m *RouteMatrix) IsPublic(path string) bool {
	for _, prefix := range m.public {
		if prefix == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if matchesPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RolesFor returns the permitted role set for the longest matching prefix.
// ok is false when no entry covers the path.
func (m *RouteMatrix) RolesFor(path string) (map[domain.Role]struct{}, bool) {
	var best *matrixEntry
	for i := range m.entries {
		entry := &m.entries[i]
		if !matchesPrefix(path, entry.prefix) {
			continue
		}
		if best == nil || len(entry.prefix) > len(best.prefix) {
			best = entry
		}
	}
	if best == nil {
		return nil, false
	}
	return best.roles, true
}

// Permits reports whether the role may access the path
func (m *RouteMatrix) Permits(path string, role domain.Role) bool {
	roles, ok := m.RolesFor(path)
	if !ok {
		return false
	}
	_, allowed := roles[role]
	return allowed
}

// matchesPrefix matches on whole path segments: "/api/v1/users" covers
// "/api/v1/users" and "/api/v1/users/5" but not "/api/v1/users-export".
func matchesPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	if len(path) == len(prefix) {
		return true
	}
	return path[len(prefix)] == '/'
}

// DefaultRouteMatrix builds the portal's route-role matrix. Every protected
// top-level route group must appear here; see the deny-by-default note above.
func DefaultRouteMatrix() *RouteMatrix {
	staff := []domain.Role{
		domain.RoleAdmin,
		domain.RoleMinister,
		domain.RolePA,
		domain.RoleBackOfficer,
		domain.RoleFieldOfficer,
	}

	return NewRouteMatrix().
		Public(
			"/",
			"/health",
			"/swagger",
			"/api/v1/auth/login",
			"/api/v1/auth/register",
			"/api/v1/auth/logout",
			"/api/v1/grievances/track",
		).
		// Any authenticated account
		Allow("/api/v1/auth", domain.AllRoles...).
		Allow("/api/v1/profile", domain.AllRoles...).
		Allow("/api/v1/grievances", domain.AllRoles...).
		Allow("/api/v1/categories", domain.AllRoles...).
		Allow("/api/v1/districts", domain.AllRoles...).
		// Admin
		Allow("/api/v1/users", domain.RoleAdmin).
		Allow("/api/v1/master", domain.RoleAdmin).
		Allow("/api/v1/dashboard/admin", domain.RoleAdmin).
		// Minister's office
		Allow("/api/v1/minister", domain.RoleMinister).
		Allow("/api/v1/events", domain.RoleAdmin, domain.RoleMinister, domain.RolePA).
		Allow("/api/v1/dashboard/minister", domain.RoleMinister, domain.RolePA).
		// Officers
		Allow("/api/v1/dashboard/officer", domain.RoleAdmin, domain.RoleBackOfficer, domain.RoleFieldOfficer).
		// Citizens
		Allow("/api/v1/dashboard/me", domain.RoleCitizen).
		// Staff-wide dashboard landing (longest prefix wins for the
		// role-specific paths above)
		Allow("/api/v1/dashboard", staff...)
}
