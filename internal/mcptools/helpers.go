package mcptools

import (
	"time"

	"github.com/chris-regnier/journalctl/internal/entry"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.Local)
}

func toResult(e entry.Entry, previewLen int) EntryResult {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EntryResult{
		ID:      e.ID,
		Title:   e.Title,
		Date:    e.Date.Local().Format(dateLayout),
		Tags:    tags,
		Preview: e.Preview(previewLen),
	}
}
