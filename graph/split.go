package graph

import (
	"fmt"

	"github.com/kbukum/gli/array"
)

// split cuts whole into one graph per row of nodeList. Edges come from the
// matching row of edgeList, or else every edge with both endpoints inside
// the row's node set. Node ids are renumbered from zero in each graph.
func split(whole *Graph, nodeList, edgeList *array.Array) (Graphs, error) {
	numGraphs := nodeList.Len()
	nodeMask, err := nodeList.BoolSlice()
	if err != nil {
		return nil, fmt.Errorf("_NodeList: %w", err)
	}
	var edgeMask []bool
	if edgeList != nil {
		if edgeList.Dims() != 2 || edgeList.Len() != numGraphs || edgeList.Shape[1] != whole.NumEdges() {
			return nil, fmt.Errorf("_EdgeList has shape %v, want (%d, %d)", edgeList.Shape, numGraphs, whole.NumEdges())
		}
		if edgeMask, err = edgeList.BoolSlice(); err != nil {
			return nil, fmt.Errorf("_EdgeList: %w", err)
		}
	}

	n, m := whole.NumNodes, whole.NumEdges()
	gs := make(Graphs, 0, numGraphs)
	for g := 0; g < numGraphs; g++ {
		remap := make(map[int]int)
		var nodes []int
		for v := 0; v < n; v++ {
			if nodeMask[g*n+v] {
				remap[v] = len(nodes)
				nodes = append(nodes, v)
			}
		}

		var edgeIDs, src, dst []int
		for e := 0; e < m; e++ {
			s, sok := remap[whole.Src[e]]
			d, dok := remap[whole.Dst[e]]
			if edgeMask != nil {
				if !edgeMask[g*m+e] {
					continue
				}
				if !sok || !dok {
					return nil, fmt.Errorf("graph %d: edge %d leaves its node set", g, e)
				}
			} else if !sok || !dok {
				continue
			}
			edgeIDs = append(edgeIDs, e)
			src = append(src, s)
			dst = append(dst, d)
		}

		sub := &Graph{
			NumNodes:   len(nodes),
			Src:        src,
			Dst:        dst,
			NodeAttrs:  make(map[string]*array.Array, len(whole.NodeAttrs)),
			EdgeAttrs:  make(map[string]*array.Array, len(whole.EdgeAttrs)),
			GraphAttrs: make(map[string]*array.Array, len(whole.GraphAttrs)),
			Device:     whole.Device,
			Metadata:   whole.Metadata,
		}
		for name, a := range whole.NodeAttrs {
			if sub.NodeAttrs[name], err = a.Rows(nodes); err != nil {
				return nil, fmt.Errorf("graph %d: Node/%s: %w", g, name, err)
			}
		}
		for name, a := range whole.EdgeAttrs {
			if sub.EdgeAttrs[name], err = a.Rows(edgeIDs); err != nil {
				return nil, fmt.Errorf("graph %d: Edge/%s: %w", g, name, err)
			}
		}
		for name, a := range whole.GraphAttrs {
			if a.Len() != numGraphs {
				return nil, fmt.Errorf("Graph/%s has %d rows, want %d", name, a.Len(), numGraphs)
			}
			if sub.GraphAttrs[name], err = a.Row(g); err != nil {
				return nil, fmt.Errorf("graph %d: Graph/%s: %w", g, name, err)
			}
		}
		gs = append(gs, sub)
	}
	return gs, nil
}
