package auth

// UserRole is the user's role. It is carried on the user record and in the
// token claims; no permission checks are derived from it.
type UserRole = string

const (
	// RoleMember is assigned to self registered users
	RoleMember UserRole = "MEMBER"
	// RoleAdmin is an administrator
	RoleAdmin UserRole = "ADMIN"
)

// GetAllRoles returns all predefined roles
func GetAllRoles() []UserRole {
	return []UserRole{
		RoleMember,
		RoleAdmin,
	}
}

// ParseRole safely parses a string into a UserRole
func ParseRole(roleStr string) (UserRole, bool) {
	for _, r := range GetAllRoles() {
		if r == roleStr {
			return r, true
		}
	}
	return "", false
}
