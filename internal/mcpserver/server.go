// Package mcpserver exposes the lookup engine as a single MCP tool,
// "dict_lookup", so AI-assistant clients can query the installed
// dictionary over stdio. This is an outer serving layer: the core engine
// it wraps performs no network or IPC of its own (the specification's
// Non-goal binds the core, not this adapter).
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dictcore/ding/internal/lookup"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps an MCP server bound to a single CachingEngine.
type Server struct {
	engine *lookup.CachingEngine
	server *mcp.Server
}

// LookupParams is the JSON shape of the dict_lookup tool's arguments.
type LookupParams struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

// LookupEntry is one result row in the tool's JSON response.
type LookupEntry struct {
	German   string `json:"german"`
	English  string `json:"english"`
	Distance int    `json:"distance"`
}

// New constructs a Server around engine and registers its tools.
func New(engine *lookup.CachingEngine) *Server {
	s := &Server{
		engine: engine,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "dingdict-mcp-server",
			Version: "0.1.0",
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "dict_lookup",
		Description: "Look up a German/English query against the installed DING dictionary and return ranked entries.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {
					Type:        "string",
					Description: "Free-text query; may contain multiple words",
				},
				"max_results": {
					Type:        "integer",
					Description: "Maximum number of entries to return (default 25)",
				},
			},
			Required: []string{"query"},
		},
	}, s.handleLookup)
}

func (s *Server) handleLookup(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params LookupParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.MaxResults <= 0 {
		params.MaxResults = 25
	}

	results, err := s.engine.Lookup(params.Query, params.MaxResults)
	if err != nil {
		return nil, err
	}

	entries := make([]LookupEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, LookupEntry{
			German:   r.Entry.German,
			English:  r.Entry.English,
			Distance: r.Distance,
		})
	}

	return jsonResponse(entries)
}

func jsonResponse(data interface{}) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(content)},
		},
	}, nil
}

// Run blocks serving MCP requests over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
