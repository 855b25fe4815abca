package auth

// Account role constants. These mirror the policy package's Role set; auth
// keeps them as plain strings since they travel inside JWT claims.
const (
	RoleClient       = "client"
	RoleProfessional = "professional"
	RoleAdmin        = "admin"
)

// AllRoles returns all valid account roles.
func AllRoles() []string {
	return []string{RoleClient, RoleProfessional, RoleAdmin}
}

// ValidRole reports whether the role is a member of the closed set.
func ValidRole(role string) bool {
	switch role {
	case RoleClient, RoleProfessional, RoleAdmin:
		return true
	}
	return false
}
