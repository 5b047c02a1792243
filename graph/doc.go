// Package graph reads GLI graph metadata into in-memory graphs.
//
// A metadata.json file describes node, edge and graph attributes, each
// stored in an .npz payload next to it. The edge list lives in the
// reserved Edge/_Edge attribute. Datasets holding many small graphs mark
// node membership in Graph/_NodeList (and optionally edge membership in
// Graph/_EdgeList); those are split into one Graph per row.
//
//	r := graph.NewReader(log)
//	gs, err := r.ReadGraph(ctx, "/data/datasets/cora/metadata.json", "cpu", true)
//	g, err := gs.Single()
package graph
