// internal/app/system/inputval/inputval.go

// Package inputval holds field-level validation helpers shared by the API
// handlers and the console's modal forms. Validation here is intentionally
// minimal (presence, shape); business rules live in stores and handlers.
package inputval

import (
	"net/mail"
	"net/url"
	"strings"
)

// IsValidEmail reports whether s parses as a bare RFC 5322 address.
// Display-name forms ("Name <a@b>") are rejected; we only store bare
// addresses.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

// IsValidHTTPURL reports whether s is an absolute http(s) URL.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// MaxLen reports whether s, trimmed, fits in n bytes.
func MaxLen(s string, n int) bool {
	return len(strings.TrimSpace(s)) <= n
}
