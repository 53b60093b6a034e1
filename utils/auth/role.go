package auth

// Role is an administrator privilege level
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// level orders the known roles. Unknown roles hold no privilege.
func (r Role) level() int {
	switch r {
	case RoleAdmin:
		return 1
	case RoleSuperAdmin:
		return 2
	default:
		return 0
	}
}

// Valid reports whether r is one of the defined roles
func (r Role) Valid() bool {
	return r.level() > 0
}

// Satisfies reports whether a principal holding r may access something that
// requires the required role. A required role that is not defined can never
// be satisfied.
func (r Role) Satisfies(required Role) bool {
	if !required.Valid() {
		return false
	}
	return r.level() >= required.level()
}
