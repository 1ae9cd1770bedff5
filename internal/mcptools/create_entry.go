package mcptools

import (
	"context"
	"fmt"
	"time"

	"github.com/chris-regnier/journalctl/internal/entry"
	"github.com/chris-regnier/journalctl/internal/logging"
	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateEntryHandler returns the handler function for the create_entry MCP tool.
func CreateEntryHandler(p storage.Provider, log logging.Logger) func(ctx context.Context, req *mcp.CallToolRequest, input CreateEntryInput) (*mcp.CallToolResult, CreateEntryOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateEntryInput) (*mcp.CallToolResult, CreateEntryOutput, error) {
		date := time.Now()
		if input.Date != "" {
			d, err := parseDate(input.Date)
			if err != nil {
				return nil, CreateEntryOutput{}, storage.Validation(fmt.Errorf("date %q is not YYYY-MM-DD", input.Date))
			}
			date = d
		}

		draft := entry.NewDraft(date, input.Title, input.Tags)
		draft.Content = input.Content

		// AddEntry validates the draft and assigns the id.
		e, err := p.AddEntry(ctx, draft)
		if err != nil {
			return nil, CreateEntryOutput{}, err
		}
		log.Info(ctx, "entry created over MCP", "entry_id", e.ID)

		return nil, CreateEntryOutput{
			ID:      e.ID,
			Date:    e.Date.Local().Format(dateLayout),
			Preview: e.Preview(200),
		}, nil
	}
}
