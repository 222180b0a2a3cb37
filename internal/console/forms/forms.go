// internal/console/forms/forms.go

// Package forms holds the console's modal drafts. Each form owns its
// in-progress input, validates presence and shape inline before any
// network traffic, and on submit hands the finished payload to exactly
// one controller callback. Submit reports whether the modal should
// close; on failure the form keeps the error for inline display and
// stays open.
package forms

import "strings"

const (
	maxNameLength     = 120
	minPasswordLength = 8
)

// The console's own copies of the small enumerations it validates
// against. Intentionally not shared with the server: form validation
// is a UX convenience, the backend remains the authority.

var validStatuses = map[string]bool{
	"active":      true,
	"inactive":    true,
	"maintenance": true,
}

var validRoles = map[string]bool{
	"super-admin": true,
	"admin":       true,
	"marketing":   true,
	"technical":   true,
	"developer":   true,
}

var validCategories = map[string]bool{
	"gasha":      true,
	"nisir":      true,
	"enyuma":     true,
	"codepro":    true,
	"biometrics": true,
}

// Derive turns a module display name into its internal slug: trimmed,
// lowercased, whitespace runs collapsed to single hyphens. Deriving an
// already derived name returns it unchanged, so the form can re-derive
// on every keystroke. Mirrors the server-side slug derivation.
func Derive(display string) string {
	return strings.Join(strings.Fields(strings.ToLower(display)), "-")
}
