package mcptools

import "github.com/chris-regnier/journalctl/internal/entry"

// SearchInput is the input schema for the search_entries MCP tool.
type SearchInput struct {
	Query string   `json:"query,omitempty" jsonschema-description:"Text to search for in entry titles and content"`
	Tags  []string `json:"tags,omitempty" jsonschema-description:"Only return entries carrying at least one of these tags"`
	Limit int      `json:"limit,omitempty" jsonschema-description:"Maximum number of results to return"`
}

// SearchOutput is the output schema for the search_entries MCP tool.
type SearchOutput struct {
	Entries []EntryResult `json:"entries"`
}

// EntryResult is the common output format for entry-related MCP tools.
type EntryResult struct {
	ID      uint32   `json:"id"`
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Tags    []string `json:"tags"`
	Preview string   `json:"preview"`
}

// ListTagsInput is the input schema for the list_tags MCP tool.
type ListTagsInput struct{}

// ListTagsOutput is the output schema for the list_tags MCP tool.
type ListTagsOutput struct {
	Tags []TagResult `json:"tags"`
}

// TagResult is a tag and the number of entries carrying it.
type TagResult struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// CreateEntryInput is the input schema for the create_entry MCP tool.
type CreateEntryInput struct {
	Title   string   `json:"title" jsonschema-description:"Entry title (required)"`
	Date    string   `json:"date,omitempty" jsonschema-description:"Entry date as YYYY-MM-DD; defaults to now"`
	Tags    []string `json:"tags,omitempty" jsonschema-description:"Tags to attach"`
	Content string   `json:"content,omitempty" jsonschema-description:"Entry content (Markdown)"`
}

// CreateEntryOutput is the output schema for the create_entry MCP tool.
type CreateEntryOutput struct {
	ID      uint32 `json:"id"`
	Date    string `json:"date"`
	Preview string `json:"preview"`
}

// ExportInput is the input schema for the export_entries MCP tool.
type ExportInput struct {
	IDs []uint32 `json:"ids,omitempty" jsonschema-description:"Entry ids to export; all entries when empty"`
}

// ExportOutput wraps the transfer envelope.
type ExportOutput struct {
	Data entry.EntriesDTO `json:"data"`
}
