package mcptools

import (
	"cmp"
	"context"
	"slices"

	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListTagsHandler returns the handler function for the list_tags MCP tool.
// Tags are ordered by usage, then name.
func ListTagsHandler(p storage.Provider) func(ctx context.Context, req *mcp.CallToolRequest, input ListTagsInput) (*mcp.CallToolResult, ListTagsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListTagsInput) (*mcp.CallToolResult, ListTagsOutput, error) {
		entries, err := p.LoadAllEntries(ctx)
		if err != nil {
			return nil, ListTagsOutput{}, err
		}

		counts := make(map[string]int)
		for _, e := range entries {
			for _, tag := range e.Tags {
				counts[tag]++
			}
		}

		tags := make([]TagResult, 0, len(counts))
		for tag, n := range counts {
			tags = append(tags, TagResult{Tag: tag, Count: n})
		}
		slices.SortFunc(tags, func(a, b TagResult) int {
			if c := cmp.Compare(b.Count, a.Count); c != 0 {
				return c
			}
			return cmp.Compare(a.Tag, b.Tag)
		})

		return nil, ListTagsOutput{Tags: tags}, nil
	}
}
