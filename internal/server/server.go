package server

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"importgraph/internal/config"
	"importgraph/internal/depgraph"
	"importgraph/internal/graph"
	"importgraph/internal/logging"
)

const systemPrompt = `# importgraph

importgraph builds the import graph of one package directory and reports
which files import which other files inside it.

- dependency_report: one line per file, "<file> imports <a>, <b>" or
  "<file> has no dependencies". Set cycles_only to keep only files in import cycles.
- find_cycles: JSON list of import cycles (strongly connected groups of files).
- export_dot: writes a Graphviz DOT file for rendering.

Paths are relative to the parent of the analyzed directory. Imports that leave
the analyzed directory are ignored.
`

// Server exposes dependency graph builds over MCP.
type Server struct {
	mcpServer    *mcp.Server
	defaults     *config.Config
	workspace    string
	logger       *slog.Logger
	systemPrompt string
}

// New creates a Server. Relative roots in tool arguments resolve against
// workspace; defaults supply every setting a tool call leaves unset.
func New(workspace string, defaults *config.Config, logger *slog.Logger) *Server {
	if defaults == nil {
		defaults = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewDiscard()
	}
	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    "importgraph",
			Version: "0.1.0",
		}, nil),
		defaults:     defaults,
		workspace:    workspace,
		logger:       logger,
		systemPrompt: systemPrompt,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// Run serves MCP over stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying server, for in-process transports.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcpServer
}

// build runs one graph build with per-call overrides applied to the defaults.
func (s *Server) build(ctx context.Context, root string, maxDepth *int, cyclesOnly bool) (*graph.Graph, error) {
	opts := s.defaults.BuildOptions(s.logger)
	opts.Root = s.resolvePath(root)
	opts.CyclesOnly = opts.CyclesOnly || cyclesOnly
	if maxDepth != nil {
		opts.MaxDepth = *maxDepth
	}
	return depgraph.Build(ctx, opts)
}

func (s *Server) resolvePath(p string) string {
	if p == "" {
		return s.workspace
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.workspace, p)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
