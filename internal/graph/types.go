package graph

import (
	gonum "gonum.org/v1/gonum/graph"
)

// Node represents an analyzed source file.
// Path is relative to the parent of the analyzed root, slash separated,
// so the root directory's own name is its first segment.
type Node struct {
	id   int64
	Path string `json:"path"`
}

// ID implements gonum's graph.Node.
func (n *Node) ID() int64 { return n.id }

// DOTID implements dot.Node so exported graphs use the file path as identifier.
func (n *Node) DOTID() string { return n.Path }

// Edge represents "Source imports Target".
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// edge is the gonum view of an Edge.
type edge struct {
	from, to *Node
}

func (e edge) From() gonum.Node         { return e.from }
func (e edge) To() gonum.Node           { return e.to }
func (e edge) ReversedEdge() gonum.Edge { return edge{from: e.to, to: e.from} }
