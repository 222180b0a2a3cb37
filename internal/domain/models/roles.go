// internal/domain/models/roles.go
package models

// Canonical role identifiers stored in User.Role.
const (
	RoleSuperAdmin = "super-admin"
	RoleAdmin      = "admin"
	RoleMarketing  = "marketing"
	RoleTechnical  = "technical"
	RoleDeveloper  = "developer"
)

// Roles is the full set of allowed role identifiers. Treat this slice as
// the single source of truth for validation.
var Roles = []string{
	RoleSuperAdmin,
	RoleAdmin,
	RoleMarketing,
	RoleTechnical,
	RoleDeveloper,
}

// IsValidRole checks if a value is a valid role.
func IsValidRole(value string) bool {
	for _, r := range Roles {
		if r == value {
			return true
		}
	}
	return false
}

// RequiresModules reports whether a role must be assigned at least one
// module at creation time. Only super-admins are exempt.
func RequiresModules(role string) bool {
	return role != RoleSuperAdmin
}
