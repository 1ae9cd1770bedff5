package mcptools

import (
	"context"

	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ExportHandler returns the handler function for the export_entries MCP tool.
func ExportHandler(p storage.Provider) func(ctx context.Context, req *mcp.CallToolRequest, input ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
		dto, err := p.GetExportObject(ctx, input.IDs)
		if err != nil {
			return nil, ExportOutput{}, err
		}
		return nil, ExportOutput{Data: dto}, nil
	}
}
