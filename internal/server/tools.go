package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Arguments structs

type DependencyReportArgs struct {
	Root       string `json:"root" jsonschema:"Directory to analyze. Relative paths resolve against the workspace root"`
	MaxDepth   *int   `json:"max_depth,omitempty" jsonschema:"Maximum directory depth below root to scan; omit for no limit"`
	CyclesOnly bool   `json:"cycles_only,omitempty" jsonschema:"Keep only files that take part in an import cycle"`
}

type FindCyclesArgs struct {
	Root     string `json:"root" jsonschema:"Directory to analyze. Relative paths resolve against the workspace root"`
	MaxDepth *int   `json:"max_depth,omitempty" jsonschema:"Maximum directory depth below root to scan; omit for no limit"`
}

type ExportDOTArgs struct {
	Root          string `json:"root" jsonschema:"Directory to analyze. Relative paths resolve against the workspace root"`
	OutputPath    string `json:"output_path" jsonschema:"Where to write the DOT file. Relative paths resolve against the workspace root"`
	MaxDepth      *int   `json:"max_depth,omitempty" jsonschema:"Maximum directory depth below root to scan; omit for no limit"`
	CyclesOnly    bool   `json:"cycles_only,omitempty" jsonschema:"Keep only files that take part in an import cycle"`
	LabelPrefix   string `json:"label_prefix,omitempty" jsonschema:"Prefix stripped from node paths to form display labels"`
	PruneIsolated bool   `json:"prune_isolated,omitempty" jsonschema:"Drop files that neither import nor are imported"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "dependency_report",
		Description: "Builds the intra-directory import graph and returns a line-per-file text report",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args DependencyReportArgs) (*mcp.CallToolResult, any, error) {
		g, err := s.build(ctx, args.Root, args.MaxDepth, args.CyclesOnly)
		if err != nil {
			return errorResult(fmt.Sprintf("Build failed: %v", err)), nil, nil
		}
		report := g.TextReport()
		if report == "" {
			report = "No files found."
		}
		return textResult(report), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find_cycles",
		Description: "Lists groups of files that import each other in a cycle",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FindCyclesArgs) (*mcp.CallToolResult, any, error) {
		g, err := s.build(ctx, args.Root, args.MaxDepth, false)
		if err != nil {
			return errorResult(fmt.Sprintf("Build failed: %v", err)), nil, nil
		}

		cycles := g.Cycles()
		if len(cycles) == 0 {
			return textResult("No import cycles found."), nil, nil
		}

		jsonBytes, err := json.MarshalIndent(cycles, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("Encoding cycles failed: %v", err)), nil, nil
		}
		return textResult(string(jsonBytes)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "export_dot",
		Description: "Builds the import graph and writes it as a Graphviz DOT file",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ExportDOTArgs) (*mcp.CallToolResult, any, error) {
		if args.OutputPath == "" {
			return errorResult("output_path is required"), nil, nil
		}

		g, err := s.build(ctx, args.Root, args.MaxDepth, args.CyclesOnly)
		if err != nil {
			return errorResult(fmt.Sprintf("Build failed: %v", err)), nil, nil
		}

		opts := s.defaults.DOTOptions()
		if args.LabelPrefix != "" {
			opts.LabelPrefix = args.LabelPrefix
		}
		opts.PruneIsolated = opts.PruneIsolated || args.PruneIsolated

		out := s.resolvePath(args.OutputPath)
		if err := g.WriteDOT(out, opts); err != nil {
			return errorResult(fmt.Sprintf("Export failed: %v", err)), nil, nil
		}

		msg := fmt.Sprintf("Wrote %d nodes and %d edges to %s", g.NodeCount(), g.EdgeCount(), out)
		return textResult(msg), nil, nil
	})
}
