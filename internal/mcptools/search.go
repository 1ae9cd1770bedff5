package mcptools

import (
	"context"
	"slices"

	"github.com/chris-regnier/journalctl/internal/app"
	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultSearchLimit = 10

// SearchHandler returns the handler function for the search_entries MCP tool.
// Matching follows the TUI filter: any listed tag, and the query as a
// case-insensitive substring of title or content. Newest entries come first.
func SearchHandler(p storage.Provider) func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
		limit := input.Limit
		if limit <= 0 {
			limit = defaultSearchLimit
		}

		entries, err := p.LoadAllEntries(ctx)
		if err != nil {
			return nil, SearchOutput{}, err
		}

		filter := app.Filter{Tags: input.Tags, Text: input.Query}
		sorter := app.DefaultSorter()
		slices.SortFunc(entries, sorter.Compare)

		results := []EntryResult{}
		for _, e := range entries {
			if !filter.Matches(e) {
				continue
			}
			results = append(results, toResult(e, 100))
			if len(results) >= limit {
				break
			}
		}

		return nil, SearchOutput{Entries: results}, nil
	}
}
