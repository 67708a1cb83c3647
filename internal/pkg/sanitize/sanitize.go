// Package sanitize strips markup from user supplied free text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes every HTML tag from s and trims surrounding whitespace.
// Entities are decoded before the policy runs, so escaped markup is stripped too.
// The result is HTML-escaped text: `&` becomes `&amp;`.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(strict.Sanitize(html.UnescapeString(s)))
}
