// Package htmlsanitize cleans rich-text fields (meeting minutes, event
// descriptions) before they are stored.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy is safe for concurrent use once built.
var policy = bluemonday.UGCPolicy()

// Sanitize strips scripts, event handlers and unsafe URLs while keeping
// ordinary formatting markup.
func Sanitize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// PlainText removes all markup.
func PlainText(s string) string {
	return strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(s))
}
