package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	guideURI     = "importgraph://guide"
	toolArgsURI  = "importgraph://tool-args/"
	markdownMIME = "text/markdown"
	schemaMIME   = "application/schema+json"
)

// toolArgs maps each tool to a function producing the schema of its arguments.
var toolArgs = map[string]func() (*jsonschema.Schema, error){
	"dependency_report": func() (*jsonschema.Schema, error) { return jsonschema.For[DependencyReportArgs](nil) },
	"find_cycles":       func() (*jsonschema.Schema, error) { return jsonschema.For[FindCyclesArgs](nil) },
	"export_dot":        func() (*jsonschema.Schema, error) { return jsonschema.For[ExportDOTArgs](nil) },
}

// toolArgSchemas renders the argument schema of every tool as indented JSON.
func toolArgSchemas() (map[string]string, error) {
	out := make(map[string]string, len(toolArgs))
	for name, schemaFor := range toolArgs {
		schema, err := schemaFor()
		if err != nil {
			return nil, fmt.Errorf("failed to derive %s schema: %w", name, err)
		}
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s schema: %w", name, err)
		}
		out[name] = string(data)
	}
	return out, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         guideURI,
		Name:        "importgraph guide",
		Description: "What each importgraph tool returns and how paths are reported",
		MIMEType:    markdownMIME,
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return singleContent(guideURI, markdownMIME, s.systemPrompt), nil
	})

	schemas, err := toolArgSchemas()
	if err != nil {
		s.logger.Warn("tool argument schemas unavailable", "error", err)
		return
	}

	s.mcpServer.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: toolArgsURI + "{tool}",
		Name:        "importgraph tool arguments",
		Description: "JSON schema of the arguments accepted by one importgraph tool",
		MIMEType:    schemaMIME,
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := req.Params.URI
		schema, ok := schemas[strings.TrimPrefix(uri, toolArgsURI)]
		if !ok {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return singleContent(uri, schemaMIME, schema), nil
	})
}

func singleContent(uri, mime, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: mime, Text: text}},
	}
}
