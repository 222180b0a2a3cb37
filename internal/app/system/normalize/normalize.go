// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address for storage and lookups.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace from a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role identifier.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims a status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Slug derives a module's internal name from its display name: trimmed,
// lowercased, runs of whitespace collapsed to a single hyphen. The
// derivation is idempotent: Slug(Slug(x)) == Slug(x).
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
