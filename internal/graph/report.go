package graph

import (
	"fmt"
	"os"
	"sort"
	"strings"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/iterator"
)

// TextReport renders one line per node in node order:
//
//	<node> imports <target1>, <target2>
//	<node> has no dependencies
func (g *Graph) TextReport() string {
	lines := make([]string, 0, len(g.nodes))
	for _, n := range g.nodes {
		deps := g.Successors(n.Path)
		if len(deps) == 0 {
			lines = append(lines, fmt.Sprintf("%s has no dependencies", n.Path))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s imports %s", n.Path, strings.Join(deps, ", ")))
	}
	return strings.Join(lines, "\n")
}

// DOTOptions controls cosmetic aspects of the DOT export. None of them
// affect node identity or edges.
type DOTOptions struct {
	// Name is the graph name written after the digraph keyword.
	Name string
	// LabelPrefix is stripped from node paths to form display labels.
	LabelPrefix string
	// PruneIsolated drops nodes with neither incoming nor outgoing edges.
	PruneIsolated bool
	// GraphAttributes are written as graph-level attributes.
	GraphAttributes map[string]string
}

// MarshalDOT encodes g in Graphviz DOT format.
func (g *Graph) MarshalDOT(opts DOTOptions) ([]byte, error) {
	data, err := dot.Marshal(newDOTView(g, opts), opts.Name, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dot: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteDOT writes the DOT encoding of g to path.
func (g *Graph) WriteDOT(path string, opts DOTOptions) error {
	data, err := g.MarshalDOT(opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dot file: %w", err)
	}
	return nil
}

// dotView decorates a Graph with labels and graph attributes for encoding.
type dotView struct {
	*Graph
	nodes []gonum.Node
	attrs attributes
}

func newDOTView(g *Graph, opts DOTOptions) *dotView {
	v := &dotView{Graph: g, attrs: sortedAttributes(opts.GraphAttributes)}
	for _, n := range g.nodes {
		if opts.PruneIsolated && len(g.succ[n.id]) == 0 && len(g.pred[n.id]) == 0 {
			continue
		}
		v.nodes = append(v.nodes, dotNode{Node: n, label: strings.TrimPrefix(n.Path, opts.LabelPrefix)})
	}
	return v
}

func (v *dotView) Nodes() gonum.Nodes {
	if len(v.nodes) == 0 {
		return gonum.Empty
	}
	return iterator.NewOrderedNodes(v.nodes)
}

func (v *dotView) DOTAttributers() (graphAttrs, nodeAttrs, edgeAttrs encoding.Attributer) {
	return v.attrs, attributes(nil), attributes(nil)
}

type dotNode struct {
	*Node
	label string
}

func (n dotNode) Attributes() []encoding.Attribute {
	if n.label == n.Path {
		return nil
	}
	return []encoding.Attribute{{Key: "label", Value: n.label}}
}

type attributes []encoding.Attribute

func (a attributes) Attributes() []encoding.Attribute { return a }

func sortedAttributes(m map[string]string) attributes {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(attributes, 0, len(keys))
	for _, k := range keys {
		out = append(out, encoding.Attribute{Key: k, Value: m[k]})
	}
	return out
}
