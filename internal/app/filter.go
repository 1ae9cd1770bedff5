package app

import (
	"slices"
	"strings"

	"github.com/chris-regnier/journalctl/internal/entry"
)

// Filter narrows the active view. An entry matches when it carries at least
// one of Tags (any entry, if Tags is empty) and Text occurs in its title or
// content, ignoring case.
type Filter struct {
	Tags []string
	Text string
}

// IsEmpty reports whether the filter lets every entry through.
func (f Filter) IsEmpty() bool {
	return len(f.Tags) == 0 && strings.TrimSpace(f.Text) == ""
}

// Matches applies the filter to a single entry.
func (f Filter) Matches(e entry.Entry) bool {
	if len(f.Tags) > 0 && !slices.ContainsFunc(f.Tags, e.HasTag) {
		return false
	}
	text := strings.ToLower(strings.TrimSpace(f.Text))
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Title), text) ||
		strings.Contains(strings.ToLower(e.Content), text)
}
