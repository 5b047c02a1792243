package graph

import (
	"fmt"
	"strings"

	"github.com/kbukum/gli/array"
	"github.com/kbukum/gli/errors"
)

// Graph is one homogeneous graph with its attributes.
type Graph struct {
	NumNodes int
	Src      []int
	Dst      []int

	NodeAttrs  map[string]*array.Array
	EdgeAttrs  map[string]*array.Array
	GraphAttrs map[string]*array.Array

	// Device is carried through from the caller untouched.
	Device   string
	Metadata *Metadata
}

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int { return len(g.Src) }

// Attr resolves a "Group/Name" reference such as "Node/NodeFeature".
func (g *Graph) Attr(ref string) (*array.Array, error) {
	group, name, ok := strings.Cut(ref, "/")
	if !ok || name == "" {
		return nil, errors.InvalidInput("ref", fmt.Sprintf("%q is not of the form Group/Name", ref))
	}

	var attrs map[string]*array.Array
	switch group {
	case GroupNode:
		attrs = g.NodeAttrs
	case GroupEdge:
		attrs = g.EdgeAttrs
	case GroupGraph:
		attrs = g.GraphAttrs
	default:
		return nil, errors.InvalidInput("ref", fmt.Sprintf("unknown attribute group %q", group))
	}

	a, ok := attrs[name]
	if !ok {
		return nil, errors.InvalidInput("ref", fmt.Sprintf("graph has no attribute %q", ref))
	}
	return a, nil
}

// Graphs is the ordered result of reading a metadata file.
type Graphs []*Graph

// Single returns the only graph, or an error if there is not exactly one.
func (gs Graphs) Single() (*Graph, error) {
	if len(gs) != 1 {
		return nil, errors.InvalidInput("graph", fmt.Sprintf("expected a single graph, got %d", len(gs)))
	}
	return gs[0], nil
}
