package server

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func connect(t *testing.T, workspace string) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	s := New(workspace, nil, nil)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := s.MCPServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callText(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func workspace(t *testing.T) string {
	t.Helper()
	ws := t.TempDir()
	writeFile(t, filepath.Join(ws, "pkg", "a.py"), "import b\n")
	writeFile(t, filepath.Join(ws, "pkg", "b.py"), "import a\n")
	writeFile(t, filepath.Join(ws, "pkg", "c.py"), "import os\n")
	return ws
}

func TestDependencyReportTool(t *testing.T) {
	session := connect(t, workspace(t))

	text, isErr := callText(t, session, "dependency_report", map[string]any{"root": "pkg"})
	assert.False(t, isErr)
	assert.Contains(t, text, "pkg/a.py imports pkg/b.py")
	assert.Contains(t, text, "pkg/c.py has no dependencies")

	text, isErr = callText(t, session, "dependency_report", map[string]any{"root": "pkg", "cycles_only": true})
	assert.False(t, isErr)
	assert.NotContains(t, text, "pkg/c.py")
}

func TestFindCyclesTool(t *testing.T) {
	session := connect(t, workspace(t))

	text, isErr := callText(t, session, "find_cycles", map[string]any{"root": "pkg"})
	require.False(t, isErr)

	var cycles [][]string
	require.NoError(t, json.Unmarshal([]byte(text), &cycles))
	assert.Equal(t, [][]string{{"pkg/a.py", "pkg/b.py"}}, cycles)
}

func TestExportDOTTool(t *testing.T) {
	ws := workspace(t)
	session := connect(t, ws)

	text, isErr := callText(t, session, "export_dot", map[string]any{
		"root":        "pkg",
		"output_path": "deps.dot",
	})
	require.False(t, isErr, text)

	data, err := os.ReadFile(filepath.Join(ws, "deps.dot"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph")
	assert.Contains(t, string(data), `"pkg/a.py" -> "pkg/b.py"`)
}

func TestBuildFailureIsToolError(t *testing.T) {
	session := connect(t, workspace(t))

	text, isErr := callText(t, session, "dependency_report", map[string]any{"root": "missing"})
	assert.True(t, isErr)
	assert.Contains(t, text, "Build failed")
}

func TestToolArgSchemas(t *testing.T) {
	schemas, err := toolArgSchemas()
	require.NoError(t, err)
	assert.Len(t, schemas, 3)
	assert.Contains(t, schemas["export_dot"], "output_path")
	assert.Contains(t, schemas["find_cycles"], "max_depth")
}

func TestReadResources(t *testing.T) {
	session := connect(t, workspace(t))
	ctx := context.Background()

	guide, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: guideURI})
	require.NoError(t, err)
	require.Len(t, guide.Contents, 1)
	assert.Contains(t, guide.Contents[0].Text, "find_cycles")

	args, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: toolArgsURI + "export_dot"})
	require.NoError(t, err)
	require.Len(t, args.Contents, 1)
	assert.Equal(t, schemaMIME, args.Contents[0].MIMEType)
	assert.Contains(t, args.Contents[0].Text, "label_prefix")

	_, err = session.ReadResource(ctx, &mcp.ReadResourceParams{URI: toolArgsURI + "nope"})
	assert.Error(t, err)
}
