package mcptools

import (
	"context"

	"github.com/chris-regnier/journalctl/internal/logging"
	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// NewJournalMCPServer creates an in-memory MCP server exposing journal tools.
// Returns the server and a client transport for connecting to it.
func NewJournalMCPServer(p storage.Provider, log logging.Logger) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(p, log)

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with registered journal tools.
func CreateMCPServer(p storage.Provider, log logging.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "journalctl",
		Version: Version,
	}, nil)

	// Read tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_entries",
		Description: "Search journal entries by text in title or content, optionally narrowed by tags",
	}, SearchHandler(p))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tags",
		Description: "List every tag used in the journal with its entry count",
	}, ListTagsHandler(p))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_entries",
		Description: "Export journal entries as a versioned transfer document",
	}, ExportHandler(p))

	// Write tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_entry",
		Description: "Create a journal entry with a title, optional date, tags and content",
	}, CreateEntryHandler(p, log))

	return server
}

// Serve runs the tool server over stdio until ctx is done or the client
// disconnects.
func Serve(ctx context.Context, p storage.Provider, log logging.Logger) error {
	server := CreateMCPServer(p, log)
	log.Info(ctx, "MCP server starting on stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}
