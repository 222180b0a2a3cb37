// internal/app/system/status/status.go
package status

// Canonical status values stored on modules, products, and users.
const (
	Active      = "active"
	Inactive    = "inactive"
	Maintenance = "maintenance"
)

// IsValid reports whether s is a recognized entity status.
func IsValid(s string) bool {
	switch s {
	case Active, Inactive, Maintenance:
		return true
	}
	return false
}

// IsValidUserStatus reports whether s is a recognized user status.
// Users are only ever active or inactive; maintenance applies to modules
// and products.
func IsValidUserStatus(s string) bool {
	return s == Active || s == Inactive
}
