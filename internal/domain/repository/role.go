package repository

// Role is the closed set of permission classes. The wire representation is
// case-sensitive uppercase. There is no hierarchy between roles; every
// operation declares its own explicit allow-list.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleStaff  Role = "STAFF"
	RoleMember Role = "MEMBER"
)

// Roles lists every valid role, for validation and seeding.
var Roles = []Role{RoleOwner, RoleAdmin, RoleStaff, RoleMember}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleStaff, RoleMember:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole returns the Role for s, or ("", false) if s is not a valid role.
// Matching is exact: roles are case-sensitive on the wire.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// In reports whether r is a member of the given allow-list.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
