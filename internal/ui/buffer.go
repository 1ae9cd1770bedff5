package ui

import "github.com/chris-regnier/journalctl/internal/entry"

// EditBuffer is the single in-flight edit. A buffer without an entry id
// becomes a new entry when saved.
type EditBuffer struct {
	EntryID uint32
	HasID   bool
	Draft   entry.Draft
}

func bufferForEntry(e entry.Entry) *EditBuffer {
	return &EditBuffer{EntryID: e.ID, HasID: true, Draft: entry.FromEntry(e)}
}

func bufferForDraft(d entry.Draft) *EditBuffer {
	return &EditBuffer{Draft: d}
}

// IsNew reports whether saving the buffer creates an entry.
func (b *EditBuffer) IsNew() bool {
	return !b.HasID
}
