package entry

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/muesli/reflow/truncate"
)

// TransferDataVersion is the schema version stamped on every EntriesDTO.
// Bump it whenever the Draft layout changes in a way importers must handle.
const TransferDataVersion uint16 = 100

// Entry represents a persisted journal entry. The ID is assigned by storage.
type Entry struct {
	ID      uint32    `json:"id"`
	Date    time.Time `json:"date"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Tags    []string  `json:"tags"`
}

// Draft is an entry that has not been assigned an ID yet.
type Draft struct {
	Date    time.Time `json:"date"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Tags    []string  `json:"tags"`
}

// EntriesDTO is the export/import envelope.
type EntriesDTO struct {
	Version uint16  `json:"version"`
	Entries []Draft `json:"entries"`
}

// NewDraft returns a draft with empty content.
func NewDraft(date time.Time, title string, tags []string) Draft {
	return Draft{
		Date:  date,
		Title: title,
		Tags:  NormalizeTags(tags),
	}
}

// FromEntry copies an entry's fields into a draft.
func FromEntry(e Entry) Draft {
	return Draft{
		Date:    e.Date,
		Title:   e.Title,
		Content: e.Content,
		Tags:    slices.Clone(e.Tags),
	}
}

// WithID turns the draft into an entry carrying the given id.
func (d Draft) WithID(id uint32) Entry {
	return Entry{
		ID:      id,
		Date:    d.Date,
		Title:   d.Title,
		Content: d.Content,
		Tags:    slices.Clone(d.Tags),
	}
}

// ValidateTitle checks whether a title is non-empty.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("entry title must not be empty")
	}
	return nil
}

// Validate checks the draft fields that storage providers reject.
func (d Draft) Validate() error {
	if err := ValidateTitle(d.Title); err != nil {
		return err
	}
	if d.Date.IsZero() {
		return fmt.Errorf("entry date must be set")
	}
	if !utf8.ValidString(d.Title) {
		return fmt.Errorf("entry title is not valid UTF-8")
	}
	if !utf8.ValidString(d.Content) {
		return fmt.Errorf("entry content is not valid UTF-8")
	}
	for _, tag := range d.Tags {
		if !utf8.ValidString(tag) {
			return fmt.Errorf("invalid tag %q: not valid UTF-8", tag)
		}
		if strings.ContainsAny(tag, ",\n") {
			return fmt.Errorf("invalid tag %q: must not contain commas or newlines", tag)
		}
	}
	return nil
}

// NormalizeTags trims, drops empties and removes duplicates while keeping
// the first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// ParseTags splits a comma separated tag list.
func ParseTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

// HasTag reports whether the entry carries tag.
func (e *Entry) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// Preview returns the content collapsed onto one line and cut to at most
// width terminal cells.
func (e *Entry) Preview(width int) string {
	content := strings.Join(strings.Fields(e.Content), " ")
	if width <= 0 {
		return content
	}
	return truncate.StringWithTail(content, uint(width), "...")
}
