// Package textclean normalizes text scraped from evidence providers and
// extracted from media before it reaches a prompt.
package textclean

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var strict = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// StripHTML removes all markup and decodes entities. Only call it on HTML:
// plain text containing "<" loses whatever looks like a tag.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	// bluemonday escapes what it keeps, so unescape afterwards.
	return html.UnescapeString(strict.Sanitize(s))
}

// Normalize collapses all runs of whitespace into single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate bounds s to max runes, marking the cut with "...".
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	cut := strings.TrimSpace(string([]rune(s)[:max-3]))
	return cut + "..."
}

// Clean normalizes whitespace in plain text and bounds the result.
func Clean(s string, max int) string {
	return Truncate(Normalize(s), max)
}

// CleanHTML is Clean for an HTML fragment.
func CleanHTML(s string, max int) string {
	return Clean(StripHTML(s), max)
}
