// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe markup from rich-text input before it
// is stored. Used for blog/content bodies and module/product descriptions
// that come from the console's rich text editors.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// Sanitize removes scripts, event handlers, and unsafe URLs while keeping
// common formatting tags (p, strong, em, lists, links, images).
func Sanitize(html string) string {
	return policy.Sanitize(html)
}
