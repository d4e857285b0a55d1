package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"importgraph/internal/graph"
)

func sampleGraph() *graph.Graph {
	b := graph.NewBuilder()
	b.AddNode("p/b.py")
	b.AddNode("p/a.py")
	b.AddNode("p/c.py")
	b.AddEdge("p/b.py", "p/a.py")
	b.AddEdge("p/c.py", "p/a.py")
	b.AddEdge("p/a.py", "p/a.py")
	return b.Graph()
}

func TestSaveAndLoadGraph(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "deps.db"))
	require.NoError(t, err)
	defer s.Close()

	g := sampleGraph()
	require.NoError(t, s.SaveGraph(ctx, g))

	loaded, err := s.LoadGraph(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p/a.py", "p/b.py", "p/c.py"}, loaded.Paths())
	assert.ElementsMatch(t, g.Edges(), loaded.Edges())

	importers, err := s.Importers(ctx, "p/a.py")
	require.NoError(t, err)
	assert.Equal(t, []string{"p/a.py", "p/b.py", "p/c.py"}, importers)
}

func TestSaveGraphReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "deps.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveGraph(ctx, sampleGraph()))

	b := graph.NewBuilder()
	b.AddNode("q/only.py")
	require.NoError(t, s.SaveGraph(ctx, b.Graph()))

	loaded, err := s.LoadGraph(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"q/only.py"}, loaded.Paths())
	assert.Zero(t, loaded.EdgeCount())
}
