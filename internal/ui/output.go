package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chris-regnier/journalctl/internal/entry"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"
)

const listDateLayout = "2006-01-02"

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	tagColor  = color.New(color.FgCyan)
)

// FormatEntryCreated formats a creation confirmation message.
func FormatEntryCreated(w io.Writer, e entry.Entry) {
	okColor.Fprintf(w, "Created entry %d", e.ID)
	fmt.Fprintf(w, " (%s) %s\n", e.Date.Local().Format(listDateLayout), e.Title)
}

// FormatEntryUpdated formats an update confirmation message.
func FormatEntryUpdated(w io.Writer, e entry.Entry) {
	okColor.Fprintf(w, "Updated entry %d", e.ID)
	fmt.Fprintf(w, " (%s) %s\n", e.Date.Local().Format(listDateLayout), e.Title)
}

// FormatEntryDeleted formats a deletion confirmation message.
func FormatEntryDeleted(w io.Writer, id uint32) {
	okColor.Fprintf(w, "Deleted entry %d.\n", id)
}

// FormatExported reports a finished export.
func FormatExported(w io.Writer, path string, count int) {
	okColor.Fprintf(w, "Exported %d entries to %s\n", count, path)
}

// FormatImported reports a finished import.
func FormatImported(w io.Writer, count int) {
	okColor.Fprintf(w, "Imported %d entries.\n", count)
}

// FormatNoChanges formats a "no changes" message.
func FormatNoChanges(w io.Writer) {
	warnColor.Fprintln(w, "No content entered; nothing saved.")
}

// FormatWarning prints a highlighted warning line.
func FormatWarning(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, "Warning: "+format+"\n", args...)
}

// FormatEntryFull formats a full entry display with metadata header.
// The markdownStyle parameter controls glamour rendering (e.g. "dark", "light").
func FormatEntryFull(w io.Writer, e entry.Entry, markdownStyle string, width int) {
	fmt.Fprintf(w, "Entry: %d\n", e.ID)
	fmt.Fprintf(w, "Title: %s\n", e.Title)
	fmt.Fprintf(w, "Date: %s\n", e.Date.Local().Format("2006-01-02 15:04"))
	if len(e.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", tagColor.Sprint(strings.Join(e.Tags, ", ")))
	}
	fmt.Fprintln(w)

	rendered := RenderMarkdownWithStyle(e.Content, width, markdownStyle)
	fmt.Fprintln(w, rendered)
}

// FormatEntryTable formats entries as aligned columns. Titles longer than
// titleWidth are cut with an ellipsis.
func FormatEntryTable(w io.Writer, entries []entry.Entry, titleWidth int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No journal entries found.")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "DATE", "TITLE", "TAGS")
	for _, e := range entries {
		title := e.Title
		if titleWidth > 0 {
			title = truncate.StringWithTail(title, uint(titleWidth), "…")
		}
		tbl.AddRow(e.ID, e.Date.Local().Format(listDateLayout), title, tagColor.Sprint(strings.Join(e.Tags, ",")))
	}
	fmt.Fprintln(w, tbl)
}

// FormatTagList prints each tag with the number of entries carrying it.
func FormatTagList(w io.Writer, counts []TagCount) {
	if len(counts) == 0 {
		fmt.Fprintln(w, "No tags found.")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, c := range counts {
		tbl.AddRow(tagColor.Sprint(c.Tag), c.Count)
	}
	fmt.Fprintln(w, tbl)
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// EntrySummary is a JSON representation for list output.
type EntrySummary struct {
	ID      uint32    `json:"id"`
	Title   string    `json:"title"`
	Date    time.Time `json:"date"`
	Tags    []string  `json:"tags"`
	Preview string    `json:"preview"`
}

// ToSummaries converts entries to summary format for JSON list output.
func ToSummaries(entries []entry.Entry) []EntrySummary {
	summaries := make([]EntrySummary, len(entries))
	for i, e := range entries {
		summaries[i] = EntrySummary{
			ID:      e.ID,
			Title:   e.Title,
			Date:    e.Date,
			Tags:    e.Tags,
			Preview: e.Preview(60),
		}
	}
	return summaries
}

// DeleteResult is a JSON representation for delete output.
type DeleteResult struct {
	ID      uint32 `json:"id"`
	Deleted bool   `json:"deleted"`
}

// TagCount pairs a tag with its usage.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// CountTags tallies tags across entries in first-seen order.
func CountTags(entries []entry.Entry) []TagCount {
	index := make(map[string]int)
	var counts []TagCount
	for _, e := range entries {
		for _, tag := range e.Tags {
			i, ok := index[tag]
			if !ok {
				i = len(counts)
				index[tag] = i
				counts = append(counts, TagCount{Tag: tag})
			}
			counts[i].Count++
		}
	}
	return counts
}
