package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/topo"
)

// Cycles returns the strongly connected components of g that contain at
// least two nodes. Each component is sorted, and components are ordered by
// their first path.
func (g *Graph) Cycles() [][]string {
	var cycles [][]string
	for _, component := range topo.TarjanSCC(g) {
		// A lone node is never a cycle here, self-import included.
		if len(component) < 2 {
			continue
		}
		paths := make([]string, 0, len(component))
		for _, n := range component {
			paths = append(paths, n.(*Node).Path)
		}
		sort.Strings(paths)
		cycles = append(cycles, paths)
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

// FilterCycles returns a new graph holding only the nodes that belong to a
// cycle, and only the edges of g whose endpoints are both retained.
// Nodes and edges keep their relative order from g.
func FilterCycles(g *Graph) *Graph {
	keep := make(map[string]bool)
	for _, cycle := range g.Cycles() {
		for _, p := range cycle {
			keep[p] = true
		}
	}

	b := NewBuilder()
	for _, n := range g.nodes {
		if keep[n.Path] {
			b.AddNode(n.Path)
		}
	}
	for _, e := range g.Edges() {
		if keep[e.Source] && keep[e.Target] {
			b.AddEdge(e.Source, e.Target)
		}
	}
	return b.Graph()
}
