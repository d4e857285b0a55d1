package graph

import (
	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
)

// Graph is a finished, read-only directed import graph.
// Nodes keep insertion order; successors keep the order edges were added.
//
// Graph implements gonum's graph.Directed so gonum algorithms and encoders
// can consume it directly.
type Graph struct {
	nodes []*Node
	byID  map[int64]*Node
	index map[string]*Node
	succ  map[int64][]*Node
	pred  map[int64][]*Node
	edges int
}

func newGraph() *Graph {
	return &Graph{
		byID:  make(map[int64]*Node),
		index: make(map[string]*Node),
		succ:  make(map[int64][]*Node),
		pred:  make(map[int64][]*Node),
	}
}

// Paths returns every node path in insertion order.
func (g *Graph) Paths() []string {
	out := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.Path
	}
	return out
}

// Contains reports whether path is a node of g.
func (g *Graph) Contains(path string) bool {
	_, ok := g.index[path]
	return ok
}

// Successors returns the paths imported by path, in the order they were added.
func (g *Graph) Successors(path string) []string {
	n, ok := g.index[path]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(g.succ[n.id]))
	for _, s := range g.succ[n.id] {
		out = append(out, s.Path)
	}
	return out
}

// HasEdge reports whether from imports to.
func (g *Graph) HasEdge(from, to string) bool {
	u, ok := g.index[from]
	if !ok {
		return false
	}
	v, ok := g.index[to]
	if !ok {
		return false
	}
	return g.HasEdgeFromTo(u.id, v.id)
}

// Edges returns all edges grouped by source in node order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for _, n := range g.nodes {
		for _, s := range g.succ[n.id] {
			out = append(out, Edge{Source: n.Path, Target: s.Path})
		}
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Node implements gonum's graph.Graph.
func (g *Graph) Node(id int64) gonum.Node {
	n, ok := g.byID[id]
	if !ok {
		return nil
	}
	return n
}

// Nodes implements gonum's graph.Graph.
func (g *Graph) Nodes() gonum.Nodes {
	if len(g.nodes) == 0 {
		return gonum.Empty
	}
	return iterator.NewOrderedNodes(asGonumNodes(g.nodes))
}

// From implements gonum's graph.Graph.
func (g *Graph) From(id int64) gonum.Nodes {
	s := g.succ[id]
	if len(s) == 0 {
		return gonum.Empty
	}
	return iterator.NewOrderedNodes(asGonumNodes(s))
}

// To implements gonum's graph.Directed.
func (g *Graph) To(id int64) gonum.Nodes {
	p := g.pred[id]
	if len(p) == 0 {
		return gonum.Empty
	}
	return iterator.NewOrderedNodes(asGonumNodes(p))
}

// HasEdgeBetween implements gonum's graph.Graph.
func (g *Graph) HasEdgeBetween(xid, yid int64) bool {
	return g.HasEdgeFromTo(xid, yid) || g.HasEdgeFromTo(yid, xid)
}

// HasEdgeFromTo implements gonum's graph.Directed.
func (g *Graph) HasEdgeFromTo(uid, vid int64) bool {
	for _, s := range g.succ[uid] {
		if s.id == vid {
			return true
		}
	}
	return false
}

// Edge implements gonum's graph.Graph.
func (g *Graph) Edge(uid, vid int64) gonum.Edge {
	if !g.HasEdgeFromTo(uid, vid) {
		return nil
	}
	return edge{from: g.byID[uid], to: g.byID[vid]}
}

func asGonumNodes(nodes []*Node) []gonum.Node {
	out := make([]gonum.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}

// Builder accumulates nodes and edges for a single build pass.
// It is not safe for concurrent use.
type Builder struct {
	g *Graph
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{g: newGraph()}
}

// AddNode adds path as a node. Adding an existing path is a no-op.
func (b *Builder) AddNode(path string) {
	b.node(path)
}

// AddEdge adds the edge from -> to, creating either endpoint if needed.
// Edges form a set: adding the same pair twice is a no-op.
func (b *Builder) AddEdge(from, to string) {
	u := b.node(from)
	v := b.node(to)
	if b.g.HasEdgeFromTo(u.id, v.id) {
		return
	}
	b.g.succ[u.id] = append(b.g.succ[u.id], v)
	b.g.pred[v.id] = append(b.g.pred[v.id], u)
	b.g.edges++
}

// Graph hands off the finished graph. The Builder must not be used afterwards.
func (b *Builder) Graph() *Graph {
	g := b.g
	b.g = nil
	return g
}

func (b *Builder) node(path string) *Node {
	if n, ok := b.g.index[path]; ok {
		return n
	}
	n := &Node{id: int64(len(b.g.nodes)), Path: path}
	b.g.nodes = append(b.g.nodes, n)
	b.g.byID[n.id] = n
	b.g.index[path] = n
	return n
}
